package progress

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/heartline/internal/constants"
	apperrors "github.com/julianstephens/heartline/internal/errors"
	"github.com/julianstephens/heartline/internal/logger"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/storage"
	"github.com/julianstephens/heartline/internal/utils"
)

// PromiseView is a vault entry with its visibility evaluated at read time
type PromiseView struct {
	Entry  models.PromiseEntry
	Locked bool
}

// Store owns the progress record for the session. Every successful
// mutation writes the whole record back through the provider.
//
// Write failures are returned as *errors.PersistenceWarning; the mutation
// is kept in memory regardless. Validation failures leave the record as it
// was.
type Store struct {
	mu       sync.Mutex
	provider storage.Provider
	now      func() time.Time
	loc      *time.Location

	record   models.ProgressRecord
	credited map[int]bool      // days credited this session
	attempts map[string]string // promise id -> most recent passphrase attempt
	firstRun bool
	readOnly bool // set when the stored record exists but could not be read
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the wall clock
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLocation sets the timezone used to derive calendar dates
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewStore(provider storage.Provider, opts ...Option) *Store {
	s := &Store{
		provider: provider,
		now:      time.Now,
		loc:      time.Local,
		record:   models.NewProgressRecord(),
		credited: make(map[int]bool),
		attempts: make(map[string]string),
		firstRun: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted record and applies the daily visit bookkeeping.
// Without a usable record the store stays at defaults and reports a first
// run; nothing is written in that case.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record = models.NewProgressRecord()
	s.credited = make(map[int]bool)
	s.attempts = make(map[string]string)
	s.firstRun = true
	s.readOnly = false

	data, err := s.provider.ReadDocument()
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Debug("No saved progress, starting first run", "path", s.provider.GetConfigPath())
			return nil
		}
		logger.Warn("Failed to read progress, saving disabled for this session", "error", err)
		s.readOnly = true
		return &apperrors.PersistenceWarning{Op: "read", Err: err}
	}

	rec, err := Decode(data)
	if err != nil {
		logger.Warn("Saved progress is malformed, starting over", "error", err)
		s.quarantine(data)
		return &apperrors.PersistenceWarning{Op: "read", Err: err}
	}

	today := s.today()
	switch rec.LastVisitDate {
	case today:
	case utils.Yesterday(s.now().In(s.loc)):
		rec.Streak++
	default:
		rec.Streak = 1
	}
	rec.LastVisitDate = today

	s.record = rec
	s.firstRun = false
	logger.Debug("Loaded progress", "streak", rec.Streak, "loveMeter", rec.LoveMeter)

	return s.persist()
}

// quarantine keeps an unreadable document next to the store so the next
// write cannot destroy it
func (s *Store) quarantine(data []byte) {
	path := s.provider.GetConfigPath() + constants.CorruptFileSuffix
	if err := os.WriteFile(path, data, 0600); err != nil {
		logger.Warn("Failed to keep malformed progress", "path", path, "error", err)
		return
	}
	logger.Info("Kept malformed progress", "path", path)
}

// persist must be called with s.mu held
func (s *Store) persist() error {
	if s.readOnly {
		logger.Warn("Not saving progress over an unreadable record", "path", s.provider.GetConfigPath())
		return &apperrors.PersistenceWarning{Op: "save", Err: apperrors.ErrStoreUnreadable}
	}
	data, err := Encode(s.record)
	if err != nil {
		logger.Warn("Failed to encode progress", "error", err)
		return &apperrors.PersistenceWarning{Op: "encode", Err: err}
	}
	if err := s.provider.WriteDocument(data); err != nil {
		logger.Warn("Failed to save progress", "error", err)
		return &apperrors.PersistenceWarning{Op: "save", Err: err}
	}
	return nil
}

func (s *Store) today() string {
	return utils.FormatDate(s.now().In(s.loc))
}

// Today returns the store's current calendar date (YYYY-MM-DD)
func (s *Store) Today() string {
	return s.today()
}

// Record returns a copy of the current record
func (s *Store) Record() models.ProgressRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

// IsFirstRun reports that no persisted record was found at load
func (s *Store) IsFirstRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstRun
}

// NeedsOnboarding reports whether the names still have to be captured
func (s *Store) NeedsOnboarding() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstRun || !s.record.IsOnboarded()
}

func (s *Store) CompleteOnboarding(userName, partnerName string, relationship constants.RelationshipType) error {
	userName = strings.TrimSpace(userName)
	partnerName = strings.TrimSpace(partnerName)

	if userName == "" {
		return apperrors.NewValidationError("userName", "must not be empty")
	}
	if partnerName == "" {
		return apperrors.NewValidationError("partnerName", "must not be empty")
	}
	if !relationship.IsValid() {
		return apperrors.NewValidationError("relationshipType", fmt.Sprintf("unknown value %q", relationship))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.record.UserName = userName
	s.record.PartnerName = partnerName
	s.record.RelationshipType = relationship
	if s.record.LastVisitDate == "" {
		s.record.LastVisitDate = s.today()
	}
	if s.record.Streak == 0 {
		s.record.Streak = 1
	}
	s.firstRun = false

	return s.persist()
}

func (s *Store) SetMood(mood constants.Mood) error {
	if !mood.IsValid() {
		return apperrors.NewValidationError("mood", fmt.Sprintf("unknown value %q", mood))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.record.Mood = mood
	return s.persist()
}

func validateDay(dayID int) error {
	if !models.IsValidDayID(dayID) {
		return apperrors.NewValidationError("dayId",
			fmt.Sprintf("%d is not between %d and %d", dayID, constants.FirstDay, constants.LastDay))
	}
	return nil
}

// RecordMemory stores the note for a day. Empty text clears it.
func (s *Store) RecordMemory(dayID int, text string) error {
	if err := validateDay(dayID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if text == "" {
		delete(s.record.Memories, dayID)
	} else {
		s.record.Memories[dayID] = text
	}
	return s.persist()
}

// RecordPhoto stores the encoded image for a day. An empty payload removes it.
func (s *Store) RecordPhoto(dayID int, payload string) error {
	if err := validateDay(dayID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if payload == "" {
		delete(s.record.Photos, dayID)
	} else {
		s.record.Photos[dayID] = payload
	}
	return s.persist()
}

// CreditDay raises the love meter once per day per session. It reports
// whether the meter was credited.
func (s *Store) CreditDay(dayID int, amount float64) (bool, error) {
	if err := validateDay(dayID); err != nil {
		return false, err
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return false, apperrors.NewValidationError("amount", "must be a positive number")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.credited[dayID] {
		logger.Debug("Day already credited this session", "day", dayID)
		return false, nil
	}

	s.credited[dayID] = true
	s.record.LoveMeter = clampMeter(s.record.LoveMeter + amount)
	logger.Debug("Credited day", "day", dayID, "loveMeter", s.record.LoveMeter)

	return true, s.persist()
}

// IsCredited reports whether dayID was credited this session
func (s *Store) IsCredited(dayID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credited[dayID]
}

// ResetMeter empties the love meter and forgets this session's credits
func (s *Store) ResetMeter() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record.LoveMeter = 0
	s.credited = make(map[int]bool)
	return s.persist()
}

// UpdateCompanion merges the patch into the companion state
func (s *Store) UpdateCompanion(patch models.CompanionPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return apperrors.NewValidationError("name", "must not be empty")
	}
	if patch.BondLevel != nil && *patch.BondLevel < 0 {
		return apperrors.NewValidationError("bondLevel", "must not be negative")
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.record.CompanionState = patch.Apply(s.record.CompanionState)
	return s.persist()
}

// AddPromise seals a new promise into the vault. The entry is returned
// even when saving fails.
func (s *Store) AddPromise(draft models.PromiseDraft) (models.PromiseEntry, error) {
	if strings.TrimSpace(draft.Text) == "" {
		return models.PromiseEntry{}, apperrors.NewValidationError("text", "must not be empty")
	}

	unlockDate, err := utils.NormalizeDate(draft.UnlockDate)
	if err != nil {
		return models.PromiseEntry{}, apperrors.NewValidationError("unlockDate", err.Error())
	}

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	entry := models.PromiseEntry{
		ID:         id.String(),
		Text:       draft.Text,
		UnlockDate: unlockDate,
		Passphrase: draft.Passphrase,
		IsSecured:  draft.IsSecured,
		CreatedAt:  s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.record.PromiseVault = append(s.record.PromiseVault, entry)
	return entry, s.persist()
}

// AttemptUnlock records a passphrase attempt for the session and returns the
// promise's resulting visibility
func (s *Store) AttemptUnlock(promiseID, passphrase string) (PromiseView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.record.PromiseVault {
		if entry.ID == promiseID {
			s.attempts[promiseID] = passphrase
			return PromiseView{Entry: entry, Locked: s.isLocked(entry)}, nil
		}
	}
	return PromiseView{}, fmt.Errorf("promise %s: %w", promiseID, apperrors.ErrNotFound)
}

// Vault returns the promises in the order they were sealed
func (s *Store) Vault() []PromiseView {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]PromiseView, 0, len(s.record.PromiseVault))
	for _, entry := range s.record.PromiseVault {
		views = append(views, PromiseView{Entry: entry, Locked: s.isLocked(entry)})
	}
	return views
}

// IsPromiseLocked evaluates visibility for entry at the current time
func (s *Store) IsPromiseLocked(entry models.PromiseEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLocked(entry)
}

func (s *Store) isLocked(entry models.PromiseEntry) bool {
	if !entry.IsSecured {
		return false
	}

	dateOpen := true
	if entry.UnlockDate != "" {
		unlock, err := utils.ParseDate(entry.UnlockDate, s.loc)
		if err != nil {
			return true
		}
		dateOpen = !utils.StartOfDay(s.now().In(s.loc)).Before(unlock)
	}

	passOpen := entry.Passphrase == "" || s.attempts[entry.ID] == entry.Passphrase

	return !(dateOpen && passOpen)
}

// SetCustomAudio stores an uploaded track and drops any external link
func (s *Store) SetCustomAudio(payload string) error {
	if payload == "" {
		return apperrors.NewValidationError("customAudioPayload", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.record.CustomAudioPayload = payload
	s.record.ExternalAudioLink = ""
	return s.persist()
}

// SetExternalAudioLink stores a streaming link and drops any uploaded track
func (s *Store) SetExternalAudioLink(link string) error {
	link = strings.TrimSpace(link)
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.NewValidationError("externalAudioLink", "must be an http(s) URL")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.record.ExternalAudioLink = link
	s.record.CustomAudioPayload = ""
	return s.persist()
}

// ClearAudio returns playback to the default playlist
func (s *Store) ClearAudio() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record.CustomAudioPayload = ""
	s.record.ExternalAudioLink = ""
	return s.persist()
}

// SelectTrack moves the playlist cursor. It reports false without changing
// anything while a custom track or link is active.
func (s *Store) SelectTrack(index int) (bool, error) {
	if index < 0 || index >= len(models.DefaultTracks) {
		return false, apperrors.NewValidationError("track",
			fmt.Sprintf("%d is out of range (0-%d)", index, len(models.DefaultTracks)-1))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.moveTrack(index)
}

func (s *Store) NextTrack() (bool, error) {
	return s.stepTrack(1)
}

func (s *Store) PrevTrack() (bool, error) {
	return s.stepTrack(-1)
}

func (s *Store) stepTrack(delta int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(models.DefaultTracks)
	return s.moveTrack(((s.record.CurrentTrackIndex+delta)%n + n) % n)
}

func (s *Store) moveTrack(index int) (bool, error) {
	if s.record.HasAudioOverride() {
		return false, nil
	}
	s.record.CurrentTrackIndex = index
	return true, s.persist()
}
