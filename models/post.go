package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is a cloudinary-hosted photo reference.
type Image struct {
	PublicID string `bson:"public_id,omitempty" json:"public_id,omitempty"`
	URL      string `bson:"url,omitempty" json:"url,omitempty"`
}

// Reply is embedded in a Comment. No further nesting below replies.
type Reply struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Body      string               `bson:"body" json:"body"`
	Likes     int                  `bson:"likes" json:"likes"`
	LikedBy   []primitive.ObjectID `bson:"likedBy" json:"likedBy"`
	CreatedAt int64                `bson:"createdAt" json:"createdAt"`
}

// Comment is embedded in a Post and has no existence outside it.
type Comment struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Body      string               `bson:"body" json:"body"`
	Likes     int                  `bson:"likes" json:"likes"`
	LikedBy   []primitive.ObjectID `bson:"likedBy" json:"likedBy"`
	Replies   []Reply              `bson:"replies" json:"replies"`
	CreatedAt int64                `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64                `bson:"updatedAt" json:"updatedAt"`
}

// Trip is a sub-offer of a Post with its own price, date and photos.
type Trip struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Price     float64            `bson:"price" json:"price"`
	TripDate  time.Time          `bson:"tripDate" json:"tripDate"`
	PostImage []Image            `bson:"postImage" json:"postImage"`
}

// Site is a named stop on the itinerary with a visit date.
type Site struct {
	Name     string    `bson:"name" json:"name"`
	SiteDate time.Time `bson:"siteDate" json:"siteDate"`
}

type Post struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Content     string               `bson:"content" json:"content"`
	Author      primitive.ObjectID   `bson:"author" json:"author"`
	PostImage   []Image              `bson:"postImage" json:"postImage"`
	Destination string               `bson:"destination" json:"destination"`
	Sites       []Site               `bson:"sites" json:"sites"`
	Currency    string               `bson:"currency,omitempty" json:"currency,omitempty"`
	Comments    []Comment            `bson:"comments" json:"comments"`
	Likes       int                  `bson:"likes" json:"likes"`
	LikedBy     []primitive.ObjectID `bson:"likedBy" json:"likedBy"`
	Views       int                  `bson:"views" json:"views"`
	Price       float64              `bson:"price" json:"price"`
	PostDate    time.Time            `bson:"postDate" json:"postDate"`
	Trips       []Trip               `bson:"trips" json:"trips"`
	CreatedAt   int64                `bson:"createdAt" json:"createdAt"`
	UpdatedAt   int64                `bson:"updatedAt" json:"updatedAt"`
}

// Destinations is the closed set of destinations a Post may use.
var Destinations = []string{"Israel", "Egypt", "Turkey", "Rwanda"}

func ValidDestination(d string) bool {
	for _, dest := range Destinations {
		if d == dest {
			return true
		}
	}
	return false
}
