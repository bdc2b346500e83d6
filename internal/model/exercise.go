package model

import "time"

// ExerciseRecord is a single logged exercise. Records are never updated.
type ExerciseRecord struct {
	UserID      string
	Description string
	Duration    int
	Date        time.Time
}

// LogQuery selects the exercise history of one user.
//
// From and To are inclusive bounds; nil means unbounded on that side.
// A Limit of zero or less returns every matching record.
type LogQuery struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
}

// HasDateRange reports whether the query restricts the record date.
func (q LogQuery) HasDateRange() bool {
	return q.From != nil || q.To != nil
}

// Matches reports whether record satisfies the user and date part of the query.
func (q LogQuery) Matches(record ExerciseRecord) bool {
	if record.UserID != q.UserID {
		return false
	}
	if q.From != nil && record.Date.Before(*q.From) {
		return false
	}
	if q.To != nil && record.Date.After(*q.To) {
		return false
	}
	return true
}
