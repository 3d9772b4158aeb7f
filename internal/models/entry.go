// Package models defines the records persisted by the repositories.
package models

// Entry is one diary row as stored on disk. Content is AES-GCM ciphertext
// sealed with the master key; Nonce is the nonce it was sealed with.
type Entry struct {
	// Date is the calendar day encoded as YYYYMMDD. Unique.
	Date int64

	Content []byte
	Nonce   []byte
}
