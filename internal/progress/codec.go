package progress

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/heartline/internal/constants"
	apperrors "github.com/julianstephens/heartline/internal/errors"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/utils"
)

// Encode serializes the record in its persisted layout
func Encode(r models.ProgressRecord) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Decode merges a persisted document over the first-run defaults.
// Each field is decoded on its own: a missing or mistyped field keeps its
// default, so documents written before a field existed still load. Keys
// written by the browser build (lastVisit, teddyState, customMusic, ...)
// are accepted as aliases.
func Decode(data []byte) (models.ProgressRecord, error) {
	rec := models.NewProgressRecord()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return rec, fmt.Errorf("%w: %v", apperrors.ErrMalformedPersistedData, err)
	}
	if fields == nil {
		return rec, fmt.Errorf("%w: document is not an object", apperrors.ErrMalformedPersistedData)
	}

	if v, ok := field[string](fields, "userName"); ok {
		rec.UserName = strings.TrimSpace(v)
	}
	if v, ok := field[string](fields, "partnerName"); ok {
		rec.PartnerName = strings.TrimSpace(v)
	}
	if v, ok := field[constants.RelationshipType](fields, "relationshipType"); ok && v.IsValid() {
		rec.RelationshipType = v
	}
	if v, ok := field[float64](fields, "loveMeter"); ok {
		rec.LoveMeter = clampMeter(v)
	}
	if v, ok := field[float64](fields, "streak"); ok && v > 0 {
		rec.Streak = int(v)
	}
	if v, ok := field[string](fields, "lastVisitDate", "lastVisit"); ok {
		if date, err := utils.NormalizeDate(v); err == nil {
			rec.LastVisitDate = date
		}
	}
	if v, ok := field[map[string]string](fields, "memories"); ok {
		rec.Memories = decodeDayMap(v, false)
	}
	if v, ok := field[map[string]string](fields, "photos"); ok {
		rec.Photos = decodeDayMap(v, true)
	}
	if v, ok := field[constants.Mood](fields, "mood"); ok && v.IsValid() {
		rec.Mood = v
	}
	if v, ok := field[map[string]json.RawMessage](fields, "companionState", "teddyState"); ok {
		rec.CompanionState = decodeCompanion(v)
	}
	if v, ok := field[[]json.RawMessage](fields, "promiseVault"); ok {
		rec.PromiseVault = decodeVault(v)
	}
	if v, ok := field[string](fields, "customAudioPayload", "customMusic"); ok {
		rec.CustomAudioPayload = v
	}
	if v, ok := field[string](fields, "externalAudioLink", "youtubeUrl"); ok {
		rec.ExternalAudioLink = strings.TrimSpace(v)
	}
	if rec.ExternalAudioLink != "" {
		rec.CustomAudioPayload = ""
	}
	if v, ok := field[float64](fields, "currentTrackIndex"); ok {
		idx := int(v)
		if idx >= 0 && idx < len(models.DefaultTracks) {
			rec.CurrentTrackIndex = idx
		}
	}

	return rec, nil
}

// field decodes the first present key that holds a T. null counts as absent.
func field[T any](fields map[string]json.RawMessage, keys ...string) (T, bool) {
	var zero T
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok || string(raw) == "null" {
			continue
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		return v, true
	}
	return zero, false
}

func clampMeter(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > constants.MaxLoveMeter:
		return constants.MaxLoveMeter
	}
	return v
}

func decodeDayMap(in map[string]string, dropEmpty bool) map[int]string {
	out := make(map[int]string, len(in))
	for key, value := range in {
		day, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || !models.IsValidDayID(day) {
			continue
		}
		if dropEmpty && value == "" {
			continue
		}
		out[day] = value
	}
	return out
}

func decodeCompanion(fields map[string]json.RawMessage) models.CompanionState {
	c := models.NewCompanionState()
	if v, ok := field[string](fields, "name"); ok && strings.TrimSpace(v) != "" {
		c.Name = strings.TrimSpace(v)
	}
	if v, ok := field[float64](fields, "bondLevel"); ok && v > 0 {
		c.BondLevel = int(v)
	}
	if v, ok := field[string](fields, "lastFedAt", "lastFed"); ok {
		if fed, ok := parseTimestamp(v); ok {
			c.LastFedAt = &fed
		}
	}
	if v, ok := field[bool](fields, "isDressed"); ok {
		c.IsDressed = v
	}
	if v, ok := field[bool](fields, "isTuckedIn"); ok {
		c.IsTuckedIn = v
	}
	return c
}

func decodeVault(items []json.RawMessage) []models.PromiseEntry {
	vault := make([]models.PromiseEntry, 0, len(items))
	seen := make(map[string]bool, len(items))

	for i, raw := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			continue
		}

		var entry models.PromiseEntry
		if v, ok := field[string](fields, "text"); ok {
			entry.Text = v
		}
		if strings.TrimSpace(entry.Text) == "" {
			continue
		}

		if v, ok := field[string](fields, "id"); ok {
			entry.ID = v
		} else if n, ok := field[json.Number](fields, "id"); ok {
			entry.ID = n.String()
		}
		if entry.ID == "" || seen[entry.ID] {
			entry.ID = fmt.Sprintf("legacy-%d", i)
		}
		seen[entry.ID] = true

		if v, ok := field[string](fields, "unlockDate"); ok {
			if date, err := utils.NormalizeDate(v); err == nil {
				entry.UnlockDate = date
			}
		}
		if v, ok := field[string](fields, "passphrase"); ok {
			entry.Passphrase = v
		}
		if v, ok := field[bool](fields, "isSecured", "isLocked"); ok {
			entry.IsSecured = v
		}
		if v, ok := field[string](fields, "createdAt"); ok {
			if created, ok := parseTimestamp(v); ok {
				entry.CreatedAt = created
			}
		}

		vault = append(vault, entry)
	}

	return vault
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
