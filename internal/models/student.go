package models

import "time"

// Student is the identity-card record keyed by the unique student code.
type Student struct {
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	NID       string    `db:"nid" json:"nid"`
	Level     string    `db:"level" json:"level"`
	Major     string    `db:"major" json:"major"`
	Division  string    `db:"division" json:"division"`
	Photo     string    `db:"photo" json:"photo"`
	Courses   []Course  `json:"courses"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}
