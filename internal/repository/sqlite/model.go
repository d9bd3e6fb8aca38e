package sqlite

import "time"

// Entry is one row of the key-value table.
type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}
