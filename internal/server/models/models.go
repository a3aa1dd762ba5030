// Package models holds the server-side records stored in Postgres and
// the wire shapes shared with the client.
package models

import "time"

// Entitlements is the five-flag access record as it travels on the wire.
// Responses always carry the complete set, never a partial one.
type Entitlements struct {
	Volume1 bool `json:"volume_1"`
	Volume2 bool `json:"volume_2"`
	Volume3 bool `json:"volume_3"`
	Volume4 bool `json:"volume_4"`
	Combo4  bool `json:"combo_4"`
}

// Normalized forces the free tier on. Every record leaving the server
// goes through this.
func (e Entitlements) Normalized() Entitlements {
	e.Volume1 = true
	return e
}

// Access is an account's entitlement row, keyed by email.
type Access struct {
	ID        string
	Email     string
	Ent       Entitlements
	UpdatedAt time.Time
}

// PushToken is one registered push destination for an email.
type PushToken struct {
	ID        string
	Email     string
	Token     string
	CreatedAt time.Time
}

// PromoCode is a single-use, expiring unlock code. The code itself is
// never stored, only its bcrypt hash.
type PromoCode struct {
	ID        string
	CodeHash  []byte
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
