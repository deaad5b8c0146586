package models

import "time"

// Review is a single row of the loaded corpus. Rating is NaN when the row has
// no rating (or no rating column resolved); Date is the zero value when no
// date column resolved.
type Review struct {
	MovieID int       `json:"movie_id"`
	Text    string    `json:"text"`
	Rating  float64   `json:"rating"`
	Date    time.Time `json:"date,omitempty"`
}
