package store

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// NewRunID returns a sortable unique identifier for a run. ULIDs embed
// the timestamp, so listing runs by id is listing them chronologically.
func NewRunID() string {
	return ulid.MustNew(ulid.Now(), ulid.Monotonic(rand.Reader, 0)).String()
}
