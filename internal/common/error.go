// Package common defines sentinel errors and small helpers shared by the
// repositories and the diary store. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Handshake errors raised while reading the key material stored in the file.
	ErrorNoVerifier = errors.New("no verifier stored")
)
