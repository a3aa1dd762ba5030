// Package models defines the client-side records persisted by the local
// state store: entitlements, reading progress, journals and preferences.
package models

import (
	"fmt"
	"time"
)

// Entitlements tracks which volumes the user has unlocked. The zero value
// is the free tier; use Default for a normalized starting record.
type Entitlements struct {
	Volume1 bool `json:"volume_1"`
	Volume2 bool `json:"volume_2"`
	Volume3 bool `json:"volume_3"`
	Volume4 bool `json:"volume_4"`
	Combo4  bool `json:"combo_4"`
}

// Default returns the free-tier entitlement record.
func Default() Entitlements {
	return Entitlements{Volume1: true}
}

// Normalized returns a copy with the free tier forced on. Applied whenever
// a record is loaded from storage or replaced from a server response, so a
// stale or malicious payload can never lock out volume 1.
func (e Entitlements) Normalized() Entitlements {
	e.Volume1 = true
	return e
}

// Unlocked reports whether volumeID is readable. Volume 1 is always free;
// the combo unlocks everything regardless of individual flags.
func (e Entitlements) Unlocked(volumeID int) bool {
	if volumeID == 1 {
		return true
	}
	if e.Combo4 {
		return true
	}
	switch volumeID {
	case 2:
		return e.Volume2
	case 3:
		return e.Volume3
	case 4:
		return e.Volume4
	default:
		return false
	}
}

// UserProgress tracks completed and favorited days per volume plus the
// daily-visit streak. CompletedDays and Favorites hold each day number at
// most once; mutators check membership before appending.
type UserProgress struct {
	CurrentVolumeID int           `json:"currentVolumeId"`
	CompletedDays   map[int][]int `json:"completedDays"`
	Favorites       map[int][]int `json:"favorites"`
	Streak          int           `json:"streak"`
	// LastVisitDate is a calendar date ("2006-01-02"), empty when the user
	// has never completed a day. Compared as a whole date, never as a
	// timestamp.
	LastVisitDate string `json:"lastVisitDate"`
}

// NewProgress returns an empty progress record pointing at volume 1.
func NewProgress() UserProgress {
	return UserProgress{
		CurrentVolumeID: 1,
		CompletedDays:   map[int][]int{},
		Favorites:       map[int][]int{},
	}
}

// TotalCompleted counts completed days across all volumes.
func (p UserProgress) TotalCompleted() int {
	n := 0
	for _, days := range p.CompletedDays {
		n += len(days)
	}
	return n
}

// NoteField identifies one of the three prompts of a day note.
type NoteField string

const (
	NoteFieldGodSpoke      NoteField = "godSpoke"
	NoteFieldSurrender     NoteField = "surrender"
	NoteFieldPracticalStep NoteField = "practicalStep"
)

// DayNote holds the user's answers for a single day. Absent fields are
// empty strings; a missing note reads as the zero value.
type DayNote struct {
	GodSpoke      string `json:"godSpoke"`
	Surrender     string `json:"surrender"`
	PracticalStep string `json:"practicalStep"`
}

// NoteKey builds the composite key for a day note.
func NoteKey(volumeID, day int) string {
	return fmt.Sprintf("%d_%d", volumeID, day)
}

// CheckIn is a single mood record. At most one exists per calendar date.
type CheckIn struct {
	Date  string `json:"date"` // "2006-01-02"
	Emoji string `json:"emoji"`
}

// CheckInEmojis are the five accepted mood values, ordered worst to best.
var CheckInEmojis = []string{"😞", "😐", "🙂", "😃", "🙌"}

// QuickNote is one entry of the rolling quick-journal log.
type QuickNote struct {
	Date time.Time `json:"date"`
	Text string    `json:"text"`
}

// QuickNoteCap is the maximum number of quick notes retained; older
// entries are silently dropped.
const QuickNoteCap = 30

// FontScale is the persisted reading-size preference.
type FontScale string

const (
	FontScaleSmall FontScale = "sm"
	FontScaleBase  FontScale = "base"
	FontScaleLarge FontScale = "lg"
)

// Valid reports whether s is one of the three known scales.
func (s FontScale) Valid() bool {
	switch s {
	case FontScaleSmall, FontScaleBase, FontScaleLarge:
		return true
	}
	return false
}

// PendingActionType tags the single deferred user intent held while the
// email gate is open.
type PendingActionType string

const (
	PendingPurchase  PendingActionType = "purchase"
	PendingCommunity PendingActionType = "community"
)

// PendingAction is the one-slot deferred action; a second gated action
// overwrites the first.
type PendingAction struct {
	Type PendingActionType `json:"type"`
	SKU  string            `json:"sku,omitempty"`
}
