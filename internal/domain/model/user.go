package model

import "time"

// Profile describes the signed-in customer.
type Profile struct {
	ID        int64
	Email     string
	Name      string
	Phone     string
	CreatedAt time.Time
}

// Registration carries sign-up form data.
type Registration struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// ProfileUpdate carries editable profile fields.
type ProfileUpdate struct {
	Name  string
	Phone string
}
