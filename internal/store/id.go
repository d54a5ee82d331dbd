package store

import "math/rand/v2"

// Record IDs are 10 characters drawn from the full alphanumeric
// alphabet. With 62^10 possible values a collision is negligible, but
// the generator still retries against the live snapshot rather than
// trusting a single draw.
const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength   = 10
)

// GenerateID returns a fresh ID not rejected by taken. The exclusion
// check only covers the snapshot the caller holds; two concurrent
// writers working from independent fetches can still (rarely) draw the
// same ID.
func GenerateID(taken func(id string) bool) string {
	for {
		id := randomAlphanumeric(idLength)
		if !taken(id) {
			return id
		}
	}
}

func randomAlphanumeric(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(b)
}
