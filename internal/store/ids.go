package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

// newTaskID returns a random (v4) UUID string. Random ids keep short prefixes
// distinguishable, which the CLI relies on for prefix lookup.
func newTaskID() (string, error) {
	u, err := uuid.NewRandom()
	if err == nil {
		return u.String(), nil
	}
	return newRandomID("task")
}

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}
