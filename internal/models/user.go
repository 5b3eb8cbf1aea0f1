package models

import "time"

// User is a portal login account, optionally linked to a student record.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	StudentCode  *string   `db:"student_code" json:"code,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
