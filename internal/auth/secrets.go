// Package auth issues and validates the signed bearer tokens guarding
// the write endpoints, and checks the admin password on login.
//
// There are two trust domains: "admin" tokens (long-lived, obtained by
// password exchange) and "temp" tokens (short-lived, issued by an
// authenticated admin). Each domain signs with its own secret.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Secrets holds the per-domain HMAC signing keys.
//
// They are derived once at process start from random material plus the
// configured salt, so no token survives a restart — clients must
// re-authenticate. Build the value in main and thread it in; nothing
// in this package keeps global state.
type Secrets struct {
	Admin []byte
	Temp  []byte
}

// DeriveSecrets builds the two signing keys. Each key is the hex
// SHA-256 of <random16>-<salt>-<random16>, with the temp key mixing in
// a domain marker so the keys are always distinct.
func DeriveSecrets(salt string) Secrets {
	return Secrets{
		Admin: deriveKey(fmt.Sprintf("%s-%s-%s", randomToken(16), salt, randomToken(16))),
		Temp:  deriveKey(fmt.Sprintf("%s-TEMP-%s-%s", randomToken(16), salt, randomToken(16))),
	}
}

func deriveKey(material string) []byte {
	sum := sha256.Sum256([]byte(material))
	return []byte(hex.EncodeToString(sum[:]))
}

// randomToken returns length hex characters of OS entropy.
func randomToken(length int) string {
	b := make([]byte, (length+1)/2)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the OS entropy source is broken;
		// refusing to start is the only sane response.
		panic(fmt.Sprintf("auth: reading random material: %v", err))
	}
	return hex.EncodeToString(b)[:length]
}
