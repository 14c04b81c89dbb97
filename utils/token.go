package utils

import (
	"math/rand"
)

// AnonymousRef produces a short non-identifying reference used when user
// data is sent to external services. Never derived from user fields.
func AnonymousRef() string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"

	ref := make([]byte, 8)
	for i := range ref {
		ref[i] = charset[rand.Intn(len(charset))]
	}
	return "subject-" + string(ref)
}
