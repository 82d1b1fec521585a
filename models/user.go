package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	IsAdmin  bool               `bson:"isAdmin" json:"isAdmin"`
	Profile  *Image             `bson:"profile,omitempty" json:"profile,omitempty"`

	// Password reset; cleared once the token is consumed.
	ResetToken          string `bson:"resetToken,omitempty" json:"-"`
	ResetTokenExpiresAt int64  `bson:"resetTokenExpiresAt,omitempty" json:"-"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64 `bson:"updatedAt" json:"updatedAt"`
}
