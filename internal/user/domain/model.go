package domain

import "time"

// ID identifies a user. It is a dedicated type so ownership comparisons
// cannot accidentally mix user ids with other string identifiers.
type ID string

func (id ID) String() string { return string(id) }

type User struct {
	ID           ID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
