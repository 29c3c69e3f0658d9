package model

import "time"

// Metadata holds the columns the store fills in on insert.
type Metadata struct {
	CreatedAt time.Time `db:"created_at" insert:"-"`
}
