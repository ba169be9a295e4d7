package idempotency

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

// storedHashMaxLength bounds the persisted fingerprint column.
const storedHashMaxLength = 1000

var (
	// ErrRequestRequired is returned when hashing an empty request.
	ErrRequestRequired = errors.New("request must be provided")

	// ErrHashInvalid is returned when loading an empty or oversized hash.
	ErrHashInvalid = errors.New("hashed request must be non-empty and within the stored length limit")
)

// HashedRequest is a value object holding the SHA-256 fingerprint of a
// serialized request, base64-encoded for storage.
type HashedRequest struct {
	value string
}

// HashRequest fingerprints a plain serialized request.
func HashRequest(request string) (*HashedRequest, error) {
	if request == "" {
		return nil, ErrRequestRequired
	}
	sum := sha256.Sum256([]byte(request))
	return &HashedRequest{value: base64.StdEncoding.EncodeToString(sum[:])}, nil
}

// LoadHashedRequest rehydrates a fingerprint that was already hashed.
func LoadHashedRequest(hash string) (*HashedRequest, error) {
	if hash == "" || len(hash) > storedHashMaxLength {
		return nil, ErrHashInvalid
	}
	return &HashedRequest{value: hash}, nil
}

// Value returns the encoded fingerprint.
func (h *HashedRequest) Value() string { return h.value }

// Equal reports whether two fingerprints refer to the same logical request.
func (h *HashedRequest) Equal(other *HashedRequest) bool {
	return other != nil && h.value == other.value
}
