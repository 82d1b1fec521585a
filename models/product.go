package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ProductBooking is embedded in a Product; one entry per booking user.
type ProductBooking struct {
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	BookingDate int64              `bson:"bookingDate" json:"bookingDate"`
}

type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Details   string             `bson:"details" json:"details"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
	Images    Image              `bson:"images" json:"images"`
	Bookings  []ProductBooking   `bson:"bookings" json:"bookings"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64              `bson:"updatedAt" json:"updatedAt"`
}
