// Package state owns the client's persisted application state: one Store
// object holds every local record (identity, entitlements, progress,
// journals, preferences), loaded once at boot and rewritten to durable
// storage as a whole on every mutation.
//
// The Store is confined to the UI event loop: all mutation happens on
// discrete user- or timer-triggered callbacks, never concurrently with
// itself, so it carries no locking.
package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/dmelo-dev/luzpalavra/internal/client/models"
	"github.com/dmelo-dev/luzpalavra/internal/common"
	"github.com/dmelo-dev/luzpalavra/internal/client/repositories/staterepo"
	"github.com/dmelo-dev/luzpalavra/internal/dbx"
	"github.com/dmelo-dev/luzpalavra/internal/logging"
	"github.com/dmelo-dev/luzpalavra/internal/timex"
	"github.com/google/uuid"
)

// Storage keys, one per logical record. They mirror the keys the original
// web release used, so an exported browser profile can be imported as-is.
const (
	keyDeviceID      = "ldp_device_id"
	keyEmail         = "lp_user_email"
	keyEntitlements  = "lp_entitlements"
	keyProgress      = "soul_progress"
	keyNotes         = "soul_notes"
	keyCheckIns      = "ldp_checkins"
	keyQuickNotes    = "lp_quick_notes"
	keyFontScale     = "lp_font_scale"
	keyNotifEnabled  = "lp_notif_enabled"
	keyNotifPrompted = "lp_notif_prompted"
	keyPendingAction = "lp_pending_action"
)

// Store is the single application-state object. It is created by the
// composition root and passed to every subsystem that reads or mutates
// local state.
type Store struct {
	db     *sql.DB
	logger logging.Logger

	// now is a seam for the calendar-date rules (streak, check-ins).
	now func() time.Time

	deviceID      string
	email         string
	entitlements  models.Entitlements
	progress      models.UserProgress
	notes         map[string]models.DayNote
	checkIns      []models.CheckIn
	quickNotes    []models.QuickNote
	fontScale     models.FontScale
	notifEnabled  bool
	notifPrompted bool
	pending       *models.PendingAction

	// entGen increments on every entitlement write; in-flight refreshes
	// capture it at dispatch and are dropped when it moved meanwhile.
	entGen uint64
}

// Open loads all persisted records from db into a new Store. A record
// that fails to decode is logged and replaced by its zero value rather
// than aborting boot. The device identifier is generated and persisted
// on first run.
func Open(ctx context.Context, db *sql.DB, logger logging.Logger) (*Store, error) {
	s := &Store{
		db:         db,
		logger:     logger,
		now:        time.Now,
		progress:   models.NewProgress(),
		notes:      map[string]models.DayNote{},
		fontScale:  models.FontScaleBase,
		checkIns:   nil,
		quickNotes: nil,
	}
	s.entitlements = models.Default()

	repo := staterepo.NewSQLiteRepository(db)
	raw, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	decode(ctx, s.logger, raw, keyDeviceID, &s.deviceID)
	decode(ctx, s.logger, raw, keyEmail, &s.email)
	decode(ctx, s.logger, raw, keyEntitlements, &s.entitlements)
	decode(ctx, s.logger, raw, keyProgress, &s.progress)
	decode(ctx, s.logger, raw, keyNotes, &s.notes)
	decode(ctx, s.logger, raw, keyCheckIns, &s.checkIns)
	decode(ctx, s.logger, raw, keyQuickNotes, &s.quickNotes)
	decode(ctx, s.logger, raw, keyFontScale, &s.fontScale)
	decode(ctx, s.logger, raw, keyNotifEnabled, &s.notifEnabled)
	decode(ctx, s.logger, raw, keyNotifPrompted, &s.notifPrompted)
	decode(ctx, s.logger, raw, keyPendingAction, &s.pending)

	s.entitlements = s.entitlements.Normalized()
	if s.progress.CompletedDays == nil {
		s.progress.CompletedDays = map[int][]int{}
	}
	if s.progress.Favorites == nil {
		s.progress.Favorites = map[int][]int{}
	}
	if s.progress.CurrentVolumeID == 0 {
		s.progress.CurrentVolumeID = 1
	}
	if s.notes == nil {
		s.notes = map[string]models.DayNote{}
	}
	if !s.fontScale.Valid() {
		s.fontScale = models.FontScaleBase
	}

	if s.deviceID == "" {
		s.deviceID = uuid.NewString()
	}

	if err := s.save(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// decode unmarshals raw[key] into out. A missing key leaves out
// untouched; a corrupt value is logged and discarded.
func decode(ctx context.Context, logger logging.Logger, raw map[string][]byte, key string, out any) {
	b, ok := raw[key]
	if !ok || len(b) == 0 {
		return
	}
	if err := json.Unmarshal(b, out); err != nil {
		logger.Warn(ctx, "discarding corrupt record", "key", key, "err", err)
	}
}

// save serializes the entire record set and writes it in one transaction,
// so a crash between two logically related mutations can never leave the
// store torn.
func (s *Store) save(ctx context.Context) error {
	records := map[string]any{
		keyDeviceID:      s.deviceID,
		keyEmail:         s.email,
		keyEntitlements:  s.entitlements,
		keyProgress:      s.progress,
		keyNotes:         s.notes,
		keyCheckIns:      s.checkIns,
		keyQuickNotes:    s.quickNotes,
		keyFontScale:     s.fontScale,
		keyNotifEnabled:  s.notifEnabled,
		keyNotifPrompted: s.notifPrompted,
		keyPendingAction: s.pending,
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := staterepo.NewSQLiteRepository(tx)
		for key, record := range records {
			b, err := json.Marshal(record)
			if err != nil {
				return err
			}
			if err := repo.Set(ctx, key, b); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetNow overrides the store's clock. Test helper.
func (s *Store) SetNow(now func() time.Time) { s.now = now }

// --- Session / identity ---

func (s *Store) DeviceID() string { return s.deviceID }

func (s *Store) Email() string { return s.email }

// SetEmail persists the user's email. Validation and normalization for
// remote use live in the account service.
func (s *Store) SetEmail(ctx context.Context, email string) error {
	s.email = email
	return s.save(ctx)
}

// --- Entitlements ---

func (s *Store) Entitlements() models.Entitlements { return s.entitlements }

// Unlocked reports whether the given volume is readable.
func (s *Store) Unlocked(volumeID int) bool {
	return s.entitlements.Unlocked(volumeID)
}

// EntitlementGen returns the current entitlement generation. A refresh
// captures it before its network call and passes it back to
// ApplyRefreshedEntitlements.
func (s *Store) EntitlementGen() uint64 { return s.entGen }

// ApplyRefreshedEntitlements replaces the whole entitlement record with
// the server payload (free tier forced on) if no other entitlement write
// happened since gen was captured. Reports whether it was applied.
func (s *Store) ApplyRefreshedEntitlements(ctx context.Context, e models.Entitlements, gen uint64) (bool, error) {
	if gen != s.entGen {
		return false, nil
	}
	s.entitlements = e.Normalized()
	s.entGen++
	return true, s.save(ctx)
}

// GrantVolumes234 applies a successful promo activation: volumes 2–4
// unlock, the combo flag is untouched.
func (s *Store) GrantVolumes234(ctx context.Context) error {
	s.entitlements.Volume2 = true
	s.entitlements.Volume3 = true
	s.entitlements.Volume4 = true
	s.entGen++
	return s.save(ctx)
}

// --- Progress ---

func (s *Store) Progress() models.UserProgress { return s.progress }

func (s *Store) SetCurrentVolume(ctx context.Context, volumeID int) error {
	s.progress.CurrentVolumeID = volumeID
	return s.save(ctx)
}

func (s *Store) IsCompleted(volumeID, day int) bool {
	return contains(s.progress.CompletedDays[volumeID], day)
}

func (s *Store) IsFavorite(volumeID, day int) bool {
	return contains(s.progress.Favorites[volumeID], day)
}

// MarkDayCompleted records the reading as done. Idempotent: a day already
// completed changes nothing and does not touch the streak. The streak
// grows by one the first time a completion happens on a given calendar
// date, no matter how many distinct days are completed that date.
func (s *Store) MarkDayCompleted(ctx context.Context, volumeID, day int) (newly bool, err error) {
	if s.IsCompleted(volumeID, day) {
		return false, nil
	}

	s.progress.CompletedDays[volumeID] = append(s.progress.CompletedDays[volumeID], day)

	today := timex.DateKey(s.now())
	if s.progress.LastVisitDate != today {
		s.progress.Streak++
		s.progress.LastVisitDate = today
	}

	return true, s.save(ctx)
}

// ToggleFavorite adds or removes the day from the volume's favorites and
// reports which direction it went, so the caller can word the
// confirmation.
func (s *Store) ToggleFavorite(ctx context.Context, volumeID, day int) (added bool, err error) {
	favs := s.progress.Favorites[volumeID]
	if contains(favs, day) {
		s.progress.Favorites[volumeID] = remove(favs, day)
		return false, s.save(ctx)
	}
	s.progress.Favorites[volumeID] = append(favs, day)
	return true, s.save(ctx)
}

// --- Journals ---

// Note returns the note for the given day, a zero value when absent.
func (s *Store) Note(volumeID, day int) models.DayNote {
	return s.notes[models.NoteKey(volumeID, day)]
}

// SetNoteField upserts a single field of the day note; the other fields
// keep their prior values. Notes are never deleted.
func (s *Store) SetNoteField(ctx context.Context, volumeID, day int, field models.NoteField, value string) error {
	key := models.NoteKey(volumeID, day)
	note := s.notes[key]
	switch field {
	case models.NoteFieldGodSpoke:
		note.GodSpoke = value
	case models.NoteFieldSurrender:
		note.Surrender = value
	case models.NoteFieldPracticalStep:
		note.PracticalStep = value
	}
	s.notes[key] = note
	return s.save(ctx)
}

func (s *Store) CheckIns() []models.CheckIn {
	out := make([]models.CheckIn, len(s.checkIns))
	copy(out, s.checkIns)
	return out
}

// TodayCheckIn returns today's mood record, if any.
func (s *Store) TodayCheckIn() (models.CheckIn, bool) {
	today := timex.DateKey(s.now())
	for _, c := range s.checkIns {
		if c.Date == today {
			return c, true
		}
	}
	return models.CheckIn{}, false
}

// RecordCheckIn stores today's mood. A second check-in on the same date
// overwrites the existing record's emoji in place, preserving its
// position in the log.
func (s *Store) RecordCheckIn(ctx context.Context, emoji string) error {
	today := timex.DateKey(s.now())
	for i, c := range s.checkIns {
		if c.Date == today {
			s.checkIns[i].Emoji = emoji
			return s.save(ctx)
		}
	}
	s.checkIns = append(s.checkIns, models.CheckIn{Date: today, Emoji: emoji})
	return s.save(ctx)
}

func (s *Store) QuickNotes() []models.QuickNote {
	out := make([]models.QuickNote, len(s.quickNotes))
	copy(out, s.quickNotes)
	return out
}

// AddQuickNote appends a quick-journal entry and truncates the log to the
// most recent entries, oldest first. Blank text is rejected.
func (s *Store) AddQuickNote(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return common.ErrEmptyNote
	}
	s.quickNotes = append(s.quickNotes, models.QuickNote{Date: s.now(), Text: trimmed})
	if len(s.quickNotes) > models.QuickNoteCap {
		s.quickNotes = s.quickNotes[len(s.quickNotes)-models.QuickNoteCap:]
	}
	return s.save(ctx)
}

// --- Preferences / markers ---

func (s *Store) FontScale() models.FontScale { return s.fontScale }

func (s *Store) SetFontScale(ctx context.Context, scale models.FontScale) error {
	if !scale.Valid() {
		scale = models.FontScaleBase
	}
	s.fontScale = scale
	return s.save(ctx)
}

func (s *Store) NotificationsEnabled() bool { return s.notifEnabled }

func (s *Store) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	s.notifEnabled = enabled
	return s.save(ctx)
}

func (s *Store) NotifPrompted() bool { return s.notifPrompted }

func (s *Store) MarkNotifPrompted(ctx context.Context) error {
	s.notifPrompted = true
	return s.save(ctx)
}

// --- Deferred action ---

// SetPendingAction queues the single deferred intent held while the email
// gate is open. A second gated action overwrites the first.
func (s *Store) SetPendingAction(ctx context.Context, a models.PendingAction) error {
	s.pending = &a
	return s.save(ctx)
}

// TakePendingAction pops the deferred intent, if any.
func (s *Store) TakePendingAction(ctx context.Context) (*models.PendingAction, error) {
	a := s.pending
	s.pending = nil
	if a == nil {
		return nil, nil
	}
	return a, s.save(ctx)
}

// Reset wipes every local record. The device identifier is regenerated,
// since the old one only had to survive as long as storage did.
func (s *Store) Reset(ctx context.Context) error {
	repo := staterepo.NewSQLiteRepository(s.db)
	if err := repo.Clear(ctx); err != nil {
		return err
	}

	s.deviceID = uuid.NewString()
	s.email = ""
	s.entitlements = models.Default()
	s.progress = models.NewProgress()
	s.notes = map[string]models.DayNote{}
	s.checkIns = nil
	s.quickNotes = nil
	s.fontScale = models.FontScaleBase
	s.notifEnabled = false
	s.notifPrompted = false
	s.pending = nil
	s.entGen++

	return s.save(ctx)
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func remove(xs []int, x int) []int {
	out := xs[:0]
	for _, v := range xs {
		if v != x {
			out = append(out, v)
		}
	}
	return out
}
