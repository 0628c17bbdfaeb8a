package alfa

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Hasher computes a deterministic digest.
type Hasher interface {
	// Hash returns the hex-encoded digest of data.
	Hash(data []byte) (string, error)
}

type sha256Hasher struct{}

// SHA256Hasher returns a SHA-256 hasher producing 64 hex characters.
func SHA256Hasher() Hasher {
	return &sha256Hasher{}
}

func (h *sha256Hasher) Hash(data []byte) (string, error) {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

type sha512Hasher struct{}

// SHA512Hasher returns a SHA-512 hasher producing 128 hex characters.
func SHA512Hasher() Hasher {
	return &sha512Hasher{}
}

func (h *sha512Hasher) Hash(data []byte) (string, error) {
	sum := sha512.Sum512(data)
	return hex.EncodeToString(sum[:]), nil
}

type blake2bHasher struct{}

// BLAKE2bHasher returns a BLAKE2b-256 hasher producing 64 hex characters.
func BLAKE2bHasher() Hasher {
	return &blake2bHasher{}
}

func (h *blake2bHasher) Hash(data []byte) (string, error) {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// builtinHashers returns the default hasher registry.
func builtinHashers() map[HashAlgo]Hasher {
	return map[HashAlgo]Hasher{
		HashSHA256:  SHA256Hasher(),
		HashSHA512:  SHA512Hasher(),
		HashBLAKE2b: BLAKE2bHasher(),
	}
}

var hashers = builtinHashers()

// Fingerprint hashes seal bytes with algo for logging and deduplication.
func Fingerprint(algo HashAlgo, data []byte) (string, error) {
	h, ok := hashers[algo]
	if !ok {
		return "", newConfigError(ErrMissingHasher, string(algo), "")
	}
	return h.Hash(data)
}
