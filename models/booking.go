package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingCanceled BookingStatus = "canceled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingCanceled:
		return true
	}
	return false
}

// bookingTransitions enumerates every allowed status move. Anything not
// listed here is rejected; there is no path out of canceled.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:  {BookingApproved, BookingCanceled},
	BookingApproved: {BookingCanceled},
}

// CanTransition reports whether a booking may move from s to next.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Status    BookingStatus      `bson:"status" json:"status"`
	Date      time.Time          `bson:"date" json:"date"`
	Details   string             `bson:"details" json:"details"`
	Travelers int                `bson:"travelers" json:"travelers"`
	TripSite  string             `bson:"tripSite" json:"tripSite"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64              `bson:"updatedAt" json:"updatedAt"`
}
