package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusValid(t *testing.T) {
	assert.True(t, BookingPending.Valid())
	assert.True(t, BookingApproved.Valid())
	assert.True(t, BookingCanceled.Valid())
	assert.False(t, BookingStatus("").Valid())
	assert.False(t, BookingStatus("confirmed").Valid())
}

func TestBookingTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingPending, BookingApproved, true},
		{BookingPending, BookingCanceled, true},
		{BookingApproved, BookingCanceled, true},

		{BookingPending, BookingPending, false},
		{BookingApproved, BookingPending, false},
		{BookingApproved, BookingApproved, false},
		{BookingCanceled, BookingPending, false},
		{BookingCanceled, BookingApproved, false},
		{BookingCanceled, BookingCanceled, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransition(tc.to)
		assert.Equalf(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingTransitionRejectsUnknownStatus(t *testing.T) {
	assert.False(t, BookingStatus("waitlisted").CanTransition(BookingApproved))
	assert.False(t, BookingPending.CanTransition(BookingStatus("confirmed")))
}

func TestValidDestination(t *testing.T) {
	for _, d := range Destinations {
		assert.True(t, ValidDestination(d))
	}
	assert.False(t, ValidDestination("Italy"))
	assert.False(t, ValidDestination(""))
	assert.False(t, ValidDestination("israel"))
}
