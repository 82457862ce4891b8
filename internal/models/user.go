package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRef is a short user snapshot embedded in views of other entities.
type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserUpdate carries a partial user update; nil fields are left unchanged.
type UserUpdate struct {
	Name  *string
	Email *string
}
