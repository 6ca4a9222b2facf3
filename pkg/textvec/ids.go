package textvec

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// newDocumentIDs generates n monotonic ULIDs, used as document identities
// when the caller does not supply any.
func newDocumentIDs(n int) []string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	ms := ulid.Timestamp(time.Now())
	ids := make([]string, n)
	for i := range ids {
		ids[i] = ulid.MustNew(ms, entropy).String()
	}
	return ids
}
