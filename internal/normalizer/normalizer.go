package normalizer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fatiguelens/internal/models"
)

// Field bounds. Violations are validation errors, not panics.
const (
	minAge   = 1
	maxAge   = 120
	minHours = 0.0
	maxHours = 24.0
	minScale = 0
	maxScale = 10

	maxNotifications = 1000
)

// platformAliases maps lowercase-normalized labels, including known
// misspellings seen in real payloads, to canonical platform names. Canonical
// names map to themselves so canonicalization is idempotent.
var platformAliases = map[string]string{
	"instagram": "Instagram",
	"instgram":  "Instagram",
	"youtube":   "YouTube",
	"yotube":    "YouTube",
	"tiktok":    "TikTok",
	"tik tok":   "TikTok",
	"facebook":  "Facebook",
	"facebok":   "Facebook",
	"twitter":   "Twitter",
	"snapchat":  "Snapchat",
	"reddit":    "Reddit",
	"linkedin":  "LinkedIn",
	"whatsapp":  "WhatsApp",
	"other":     "Other",
}

// CanonicalPlatform resolves a raw platform label against the alias table.
// Unknown labels pass through trimmed but otherwise untouched.
func CanonicalPlatform(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := platformAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// Normalize validates and canonicalizes a raw JSON payload into a
// TelemetryRecord. All field errors are collected rather than short-circuited;
// a non-empty error list means the record must not be used. Optional fields
// absent from the payload are filled from typed defaults and unknown keys are
// ignored, so applying Normalize to a re-encoded record is a no-op.
func Normalize(payload map[string]any) (models.TelemetryRecord, []string) {
	var errs []string

	rec := models.TelemetryRecord{
		SleepQuality:          5,
		PreferredDevice:       "Unknown",
		EntertainmentPlatform: "Unknown",
		SocialMediaGoal:       "None",
	}

	rec.Age = requireInt(payload, "age", minAge, maxAge, &errs)
	rec.SocialMediaTimeHours = requireFloat(payload, "socialMediaTimeHours", &errs)
	rec.ScreenTimeHours = requireFloat(payload, "screenTimeHours", &errs)

	if v, ok := present(payload, "primaryPlatform"); ok {
		if raw, isStr := v.(string); isStr {
			rec.PrimaryPlatform = CanonicalPlatform(raw)
		} else {
			errs = append(errs, "Field primaryPlatform must be a string")
		}
	} else {
		errs = append(errs, missingField("primaryPlatform"))
	}

	rec.NotificationFrequency = optionalInt(payload, "notificationFrequency", 0, maxNotifications, rec.NotificationFrequency, &errs)
	rec.MessagingTimeHours = optionalFloat(payload, "messagingTimeHours", rec.MessagingTimeHours, &errs)
	rec.VideoTimeHours = optionalFloat(payload, "videoTimeHours", rec.VideoTimeHours, &errs)
	rec.GamingTimeHours = optionalFloat(payload, "gamingTimeHours", rec.GamingTimeHours, &errs)
	rec.MusicTimeHours = optionalFloat(payload, "musicTimeHours", rec.MusicTimeHours, &errs)
	rec.SleepQuality = optionalInt(payload, "sleepQuality", minScale, maxScale, rec.SleepQuality, &errs)
	rec.TechSavviness = optionalInt(payload, "techSavviness", minScale, maxScale, rec.TechSavviness, &errs)
	rec.PreferredDevice = optionalString(payload, "preferredDevice", rec.PreferredDevice)
	rec.EntertainmentPlatform = optionalString(payload, "entertainmentPlatform", rec.EntertainmentPlatform)
	rec.SocialMediaGoal = optionalString(payload, "socialMediaGoal", rec.SocialMediaGoal)

	return rec, errs
}

func missingField(name string) string {
	return fmt.Sprintf("Missing required field: %s", name)
}

// present reports whether the payload carries a usable value for key. Absent
// keys, nulls and blank strings all count as missing.
func present(payload map[string]any, key string) (any, bool) {
	v, ok := payload[key]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

func presentString(payload map[string]any, key string) (string, bool) {
	v, ok := present(payload, key)
	if !ok {
		return "", false
	}
	s, isStr := v.(string)
	if !isStr {
		return "", false
	}
	return s, true
}

// coerceFloat accepts JSON numbers and numeric-looking strings.
func coerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func coerceInt(v any) (int, bool) {
	f, ok := coerceFloat(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func requireInt(payload map[string]any, key string, min, max int, errs *[]string) int {
	v, ok := present(payload, key)
	if !ok {
		*errs = append(*errs, missingField(key))
		return 0
	}
	n, ok := coerceInt(v)
	if !ok || n < min || n > max {
		*errs = append(*errs, fmt.Sprintf("Field %s must be an integer between %d and %d", key, min, max))
		return 0
	}
	return n
}

func requireFloat(payload map[string]any, key string, errs *[]string) float64 {
	v, ok := present(payload, key)
	if !ok {
		*errs = append(*errs, missingField(key))
		return 0
	}
	f, ok := coerceFloat(v)
	if !ok || f < minHours || f > maxHours {
		*errs = append(*errs, fmt.Sprintf("Field %s must be a number between %g and %g", key, minHours, maxHours))
		return 0
	}
	return f
}

func optionalInt(payload map[string]any, key string, min, max, fallback int, errs *[]string) int {
	v, ok := present(payload, key)
	if !ok {
		return fallback
	}
	n, ok := coerceInt(v)
	if !ok || n < min || n > max {
		*errs = append(*errs, fmt.Sprintf("Field %s must be an integer between %d and %d", key, min, max))
		return fallback
	}
	return n
}

func optionalFloat(payload map[string]any, key string, fallback float64, errs *[]string) float64 {
	v, ok := present(payload, key)
	if !ok {
		return fallback
	}
	f, ok := coerceFloat(v)
	if !ok || f < minHours || f > maxHours {
		*errs = append(*errs, fmt.Sprintf("Field %s must be a number between %g and %g", key, minHours, maxHours))
		return fallback
	}
	return f
}

func optionalString(payload map[string]any, key, fallback string) string {
	s, ok := presentString(payload, key)
	if !ok {
		return fallback
	}
	return strings.TrimSpace(s)
}
