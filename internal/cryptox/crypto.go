// Package cryptox holds the key handling used to seal diary content:
// argon2id key derivation, a key verifier, and AES-GCM sealing of JSON
// payloads.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"

	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize is the length of the random salt stored next to the data.
	SaltSize = 32
	// KeySize is the length of the derived master key (AES-256).
	KeySize = 32
	// NonceSize is the AES-GCM nonce length used by EncryptEntry.
	NonceSize = 12
)

// ErrBadNonce is returned by DecryptEntry for a nonce of the wrong length.
var ErrBadNonce = errors.New("invalid nonce length")

// argon2id parameters. Changing them invalidates every existing verifier.
const (
	kdfTime    = 1
	kdfMemory  = 64 * 1024
	kdfThreads = 4
)

// MakeVerifier returns the value persisted to check a candidate master key
// without storing the key itself.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// DeriveMasterKey stretches password with salt into a KeySize-byte key.
// It accepts any input; a wrong password only shows up when the verifier
// or a sealed payload fails to match.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, kdfTime, kdfMemory, kdfThreads, KeySize)
}

// EncryptEntry serializes the given value to JSON and encrypts it using AES-GCM.
//
// The key must be a valid AES key length (16, 24, or 32 bytes). A new random
// nonce is generated for each call. The ciphertext and nonce are returned
// separately so they can be stored in their own columns.
//
// Example:
//
//	ciphertext, nonce, err := cryptox.EncryptEntry(payload{Content: "hello"}, key)
//	if err != nil {
//	    return err
//	}
func EncryptEntry(entry any, key []byte) (ciphertext, nonce []byte, err error) {
	plaintext, err := json.Marshal(entry)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// DecryptEntry opens ciphertext with key and nonce and unmarshals the JSON
// plaintext into v. Authentication failure (wrong key, tampered data) is
// returned as an error and v is left untouched.
func DecryptEntry(ciphertext, nonce, key []byte, v any) error {
	aesgcm, err := newGCM(key)
	if err != nil {
		return err
	}

	if len(nonce) != aesgcm.NonceSize() {
		return ErrBadNonce
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}

	return json.Unmarshal(plaintext, v)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
