package domain

import "time"

// Gender values accepted at registration.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

type User struct {
	ID        int       `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Gender    *string   `json:"gender" db:"gender"`
	Avatar    *string   `json:"avatar" db:"avatar"`
	Latitude  *float64  `json:"latitude" db:"latitude"`
	Longitude *float64  `json:"longitude" db:"longitude"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HasCoordinates reports whether both latitude and longitude are set.
// Distance filtering requires the requesting user to have both.
func (u *User) HasCoordinates() bool {
	return u.Latitude != nil && u.Longitude != nil
}
