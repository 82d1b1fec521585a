package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tourly/config"
	"tourly/models"
)

func sampleBooking() models.Booking {
	return models.Booking{
		ID:        primitive.NewObjectID(),
		Name:      "Jordan",
		Email:     "jordan@example.com",
		Status:    models.BookingPending,
		Date:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Travelers: 3,
		TripSite:  "Giza",
	}
}

func TestBookingRequestedBody(t *testing.T) {
	body := BookingRequestedBody(sampleBooking(), "Nile Cruise")

	assert.Contains(t, body, "Jordan")
	assert.Contains(t, body, `"Nile Cruise"`)
	assert.Contains(t, body, "Oct 1, 2026")
	assert.Contains(t, body, "Travelers: 3")
	assert.Contains(t, body, "Site: Giza")
	assert.Contains(t, body, "Status: pending")
}

func TestNewReadsConfig(t *testing.T) {
	m := New(config.Config{
		SMTPHost:      "smtp.example.com",
		SMTPPort:      2525,
		EmailFrom:     "noreply@example.com",
		OperatorEmail: "ops@example.com",
	})

	assert.NotNil(t, m.dialer)
	assert.Equal(t, "noreply@example.com", m.from)
	assert.Equal(t, "ops@example.com", m.operator)
}
