package advisor

import "fatiguelens/internal/models"

// maxRecommendations caps the advisory list; rule order encodes priority
// because later rules are dropped once the cap is reached.
const maxRecommendations = 3

// Advice strings. Kept as constants so tests and deployments agree on exact
// wording.
const (
	AdviceReduceScreenTime = "Reduce daily screen time by 2 hours"
	AdviceGenericBreaks    = "Take regular 5-minute breaks"
	AdviceSleepHygiene     = "Improve sleep quality with a digital detox 1 hour before bed"
	AdviceSocialMediaFree  = "Schedule social-media-free blocks during the day"
)

// platformAdvice is keyed by canonicalized platform name.
var platformAdvice = map[string]string{
	"Instagram": "Try using grayscale mode to reduce visual stimulation",
	"YouTube":   "Enable reminder breaks every 45 minutes",
	"TikTok":    "Activate screen time management in app settings",
}

// Policy holds the advisory thresholds. Zero value is never used; build one
// from configuration.
type Policy struct {
	ScreenTimeThresholdHours  float64
	HighFatigueScore          float64
	SocialMediaThresholdHours float64
	SocialMediaAdvisory       bool
}

// DefaultPolicy mirrors the production deployment thresholds.
func DefaultPolicy() Policy {
	return Policy{
		ScreenTimeThresholdHours:  8,
		HighFatigueScore:          6,
		SocialMediaThresholdHours: 5,
	}
}

// Recommend derives at most three advisory strings from the normalized
// telemetry and the fatigue score. Pure: identical inputs always yield an
// identical ordered list.
func (p Policy) Recommend(rec models.TelemetryRecord, score float64) []string {
	recommendations := make([]string, 0, maxRecommendations)

	if rec.ScreenTimeHours > p.ScreenTimeThresholdHours {
		recommendations = append(recommendations, AdviceReduceScreenTime)
	}

	// Platform lookup always contributes exactly one entry.
	if advice, ok := platformAdvice[rec.PrimaryPlatform]; ok {
		recommendations = append(recommendations, advice)
	} else {
		recommendations = append(recommendations, AdviceGenericBreaks)
	}

	if score > p.HighFatigueScore {
		recommendations = append(recommendations, AdviceSleepHygiene)
	}

	if p.SocialMediaAdvisory && rec.SocialMediaTimeHours > p.SocialMediaThresholdHours {
		recommendations = append(recommendations, AdviceSocialMediaFree)
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}
