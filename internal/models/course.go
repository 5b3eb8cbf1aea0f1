package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Credits is the credit-hour count of a course. Legacy clients submit it as a
// number, a numeric string, or an empty string for a blank table row, so it
// unmarshals from any of those; it always marshals as a number.
type Credits float64

// UnmarshalJSON accepts numbers, numeric strings and "".
func (c *Credits) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*c = 0
		return nil
	}
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw == "" {
			*c = 0
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// Malformed records are stored as-is and simply excluded
			// from GPA computation.
			*c = 0
			return nil
		}
		*c = Credits(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Credits(v)
	return nil
}

// Course is one row of a student's course list. Blank rows are legal and kept
// in place so positions stay aligned with the fixed-size table views.
type Course struct {
	Code    string  `db:"code" json:"code,omitempty"`
	Name    string  `db:"name" json:"name"`
	Credits Credits `db:"credits" json:"credits"`
	Grade   string  `db:"grade" json:"grade"`
}

// IsBlank reports whether the row carries no data at all.
func (c Course) IsBlank() bool {
	return c.Code == "" && c.Name == "" && c.Grade == "" && c.Credits == 0
}
