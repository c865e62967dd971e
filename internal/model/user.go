package model

import (
	"time"
)

// User represents a user account. The ID is an integer allocated from the
// shared sequence counter at signup, not a Mongo ObjectID.
type User struct {
	ID               int64     `bson:"_id"`
	Username         string    `bson:"username"`
	PasswordHash     string    `bson:"password"`
	CourseRegistered bool      `bson:"course_registered"`
	OTP              string    `bson:"otp,omitempty"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}
