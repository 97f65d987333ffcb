package models

import "time"

// PromiseEntry is an append-only vault item
type PromiseEntry struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	UnlockDate string    `json:"unlockDate,omitempty"` // YYYY-MM-DD format
	Passphrase string    `json:"passphrase,omitempty"`
	IsSecured  bool      `json:"isSecured"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PromiseDraft is what a caller supplies when sealing a new promise
type PromiseDraft struct {
	Text       string
	UnlockDate string
	Passphrase string
	IsSecured  bool
}
