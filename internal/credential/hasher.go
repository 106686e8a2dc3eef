// Package credential hashes and verifies account passwords.
//
// New hashes are argon2id strings in the PHC format
// ($argon2id$v=19$m=<KiB>,t=<iterations>,p=<lanes>$<salt>$<key>).
// bcrypt hashes ($2a$, $2b$, $2y$) are accepted for verification so that accounts
// provisioned by other tooling keep working.
package credential

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	saltLen = 16
	keyLen  = 32

	// Upper bounds for cost parameters read back from stored hashes.
	maxTime   = 64
	maxMemKiB = 1 << 20
)

// ErrMalformedHash is returned when a stored hash cannot be decoded.
var ErrMalformedHash = errors.New("malformed password hash")

// Params are argon2id cost parameters.
type Params struct {
	Time   uint32
	MemKiB uint32
	Par    uint8
}

// Hasher produces and checks salted one-way password hashes.
type Hasher struct {
	params Params
}

// NewHasher creates a Hasher that hashes new passwords with p.
func NewHasher(p Params) *Hasher {
	if p.Time == 0 {
		p.Time = 1
	}
	if p.MemKiB == 0 {
		p.MemKiB = 64 * 1024
	}
	if p.Par == 0 {
		p.Par = 1
	}
	return &Hasher{params: p}
}

// Hash returns the encoded argon2id hash of password with a fresh random salt.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.MemKiB, h.params.Par, keyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.MemKiB, h.params.Time, h.params.Par,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches the encoded hash.
// A mismatch is (false, nil); an undecodable hash is an error.
func (h *Hasher) Verify(encoded, password string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return verifyArgon2id(encoded, password)
	case strings.HasPrefix(encoded, "$2a$"), strings.HasPrefix(encoded, "$2b$"), strings.HasPrefix(encoded, "$2y$"):
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
		}
		return true, nil
	default:
		return false, ErrMalformedHash
	}
}

func verifyArgon2id(encoded, password string) (bool, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedHash
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.MemKiB, &p.Time, &p.Par); err != nil {
		return false, ErrMalformedHash
	}
	if p.Time < 1 || p.Time > maxTime || p.Par < 1 || p.MemKiB < 8*uint32(p.Par) || p.MemKiB > maxMemKiB {
		return false, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false, ErrMalformedHash
	}

	got := argon2.IDKey([]byte(password), salt, p.Time, p.MemKiB, p.Par, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
