// Package sessionid generates compact identifiers for simulation runs,
// used to correlate log lines, reports, and scenario outputs.
//
// An identifier is a UUIDv7 encoded as 26 characters of Crockford
// base32, so IDs sort roughly by creation time.
package sessionid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Crockford's base32 alphabet (no i, l, o, u).
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random tail of an ID. *rand/v2.Rand
// satisfies it, which keeps tests deterministic.
type RandSource interface {
	IntN(n int) int
}

// New returns a fresh session ID using crypto/rand for the random
// bits.
func New() string {
	return encode(newUUIDv7(nil))
}

// NewWithRand returns a fresh session ID drawing random bits from r.
func NewWithRand(r RandSource) string {
	return encode(newUUIDv7(r))
}

// newUUIDv7 builds a 128-bit UUIDv7: a 48-bit millisecond timestamp
// followed by random bits, with the version and variant fields set.
func newUUIDv7(r RandSource) [16]byte {
	var id [16]byte

	now := time.Now().UnixMilli()
	id[0] = byte(now >> 40)
	id[1] = byte(now >> 32)
	id[2] = byte(now >> 24)
	id[3] = byte(now >> 16)
	id[4] = byte(now >> 8)
	id[5] = byte(now)

	if r != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(r.IntN(256))
		}
	} else {
		if _, err := rand.Read(id[6:]); err != nil {
			panic("sessionid: " + err.Error())
		}
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // variant 10

	return id
}

// encode renders 128 bits as 26 base32 characters, MSB first. Two zero
// bits are prepended to reach 130, which is why the first character is
// always 0-7.
func encode(id [16]byte) string {
	var out [26]byte
	out[0] = alphabet[id[0]>>5]

	acc := uint32(id[0] & 0x1f)
	bits := 5
	n := 1
	for _, b := range id[1:] {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			out[n] = alphabet[(acc>>(bits-5))&0x1f]
			bits -= 5
			n++
		}
	}
	return string(out[:])
}

// Validate checks that id is a well-formed session ID.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("session ID must be 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("session ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
