package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sag-insper/schedule-api/internal/apperror"
)

// VerifyPassword compares the caller-supplied pre-hashed password
// against the configured hash.
//
// Two formats are accepted for the configured value:
//   - a bcrypt hash ("$2..."), verified with
//     bcrypt.CompareHashAndPassword — the recommended setup, since the
//     stored value then never equals what clients send;
//   - a bare hex digest, compared in constant time.
//
// Either way the comparison leaks nothing through timing.
func VerifyPassword(configured, provided string) error {
	if strings.HasPrefix(configured, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(configured), []byte(provided)); err != nil {
			return apperror.Unauthorized("incorrect password")
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(configured), []byte(provided)) != 1 {
		return apperror.Unauthorized("incorrect password")
	}
	return nil
}
