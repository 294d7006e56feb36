// Package roundid generates sortable identifiers for simulated rounds.
package roundid

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Base32 alphabet used for encoding (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random portion of an ID. *rand.Rand from
// math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Generator handles round ID generation with configurable randomness
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a new generator. A nil RandSource falls back to
// crypto/rand.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate creates a new round ID using UUIDv7 encoded as a 26-character
// base32 string
func Generate() string {
	return NewGenerator(nil).Generate()
}

// GenerateWithRandSource creates a new round ID using the provided RandSource
func GenerateWithRandSource(randSource RandSource) string {
	return NewGenerator(randSource).Generate()
}

// Generate creates a new round ID using the generator's RandSource
func (g *Generator) Generate() string {
	uuid := g.generateUUIDv7()
	return encodeBase32(uuid)
}

// generateUUIDv7 creates a 128-bit UUIDv7: a 48-bit millisecond timestamp
// followed by random data with the version and variant bits pinned.
func (g *Generator) generateUUIDv7() [16]byte {
	var uuid [16]byte

	now := time.Now().UnixMilli()

	// 48-bit timestamp in the first 6 bytes
	uuid[0] = byte(now >> 40)
	uuid[1] = byte(now >> 32)
	uuid[2] = byte(now >> 24)
	uuid[3] = byte(now >> 16)
	uuid[4] = byte(now >> 8)
	uuid[5] = byte(now)

	// Fill the remaining 10 bytes with random data
	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.randSource.IntN(256))
		}
	} else {
		if _, err := rand.Read(uuid[6:]); err != nil {
			panic("failed to generate random bytes: " + err.Error())
		}
	}

	// Version (4 bits) is 7, variant (2 bits) is 10
	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return uuid
}

// encodeBase32 encodes a 128-bit UUID as a 26-character base32 string,
// five bits per character.
func encodeBase32(data [16]byte) string {
	result := make([]byte, 26)

	for i := 0; i < 26; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8

		if byteIndex < 16 {
			if bitIndex <= 3 {
				// All 5 bits sit in the same byte
				value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
			} else {
				// Bits span two bytes
				value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
				if byteIndex+1 < 16 {
					value |= data[byteIndex+1] >> (11 - bitIndex)
				}
			}
		}

		result[i] = alphabet[value]
	}

	return string(result)
}

// Validate checks that a round ID is 26 characters of valid base32 whose
// leading character keeps the value within 128 bits.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("round ID must be exactly 26 characters, got %d", len(id))
	}

	firstChar := id[0]
	if firstChar > '7' {
		return fmt.Errorf("round ID first character must be 0-7, got %c", firstChar)
	}

	for i, char := range id {
		valid := false
		for _, validChar := range alphabet {
			if char == validChar {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}

	return nil
}
