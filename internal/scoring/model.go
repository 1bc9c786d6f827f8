package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fatiguelens/internal/models"
)

// LinearModel is the reference oracle: a linear regression over the numeric
// telemetry features plus a per-platform effect, loaded from a YAML weight
// artifact exported by the training pipeline.
type LinearModel struct {
	Intercept             float64            `yaml:"intercept"`
	Weights               map[string]float64 `yaml:"weights"`
	PlatformEffects       map[string]float64 `yaml:"platformEffects"`
	DefaultPlatformEffect float64            `yaml:"defaultPlatformEffect"`
}

// Load reads and validates a weight artifact. Any failure here means the
// oracle is unavailable; the service must not start serving scores without it.
func Load(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read artifact %s: %v", ErrUnavailable, path, err)
	}

	var model LinearModel
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("%w: decode artifact %s: %v", ErrUnavailable, path, err)
	}

	if len(model.Weights) == 0 {
		return nil, fmt.Errorf("%w: artifact %s has no weights", ErrUnavailable, path)
	}
	for name := range model.Weights {
		if _, ok := featureNames[name]; !ok {
			return nil, fmt.Errorf("%w: artifact %s references unknown feature %q", ErrUnavailable, path, name)
		}
	}

	return &model, nil
}

var featureNames = map[string]struct{}{
	"age":                   {},
	"socialMediaTimeHours":  {},
	"screenTimeHours":       {},
	"notificationFrequency": {},
	"messagingTimeHours":    {},
	"videoTimeHours":        {},
	"gamingTimeHours":       {},
	"musicTimeHours":        {},
	"sleepQuality":          {},
	"techSavviness":         {},
}

func features(rec models.TelemetryRecord) map[string]float64 {
	return map[string]float64{
		"age":                   float64(rec.Age),
		"socialMediaTimeHours":  rec.SocialMediaTimeHours,
		"screenTimeHours":       rec.ScreenTimeHours,
		"notificationFrequency": float64(rec.NotificationFrequency),
		"messagingTimeHours":    rec.MessagingTimeHours,
		"videoTimeHours":        rec.VideoTimeHours,
		"gamingTimeHours":       rec.GamingTimeHours,
		"musicTimeHours":        rec.MusicTimeHours,
		"sleepQuality":          float64(rec.SleepQuality),
		"techSavviness":         float64(rec.TechSavviness),
	}
}

// Score evaluates the linear model. The output is not clamped: the classifier
// ladder is total over all reals.
func (m *LinearModel) Score(rec models.TelemetryRecord) (float64, error) {
	if m == nil || len(m.Weights) == 0 {
		return 0, ErrUnavailable
	}

	values := features(rec)
	score := m.Intercept
	for name, weight := range m.Weights {
		score += weight * values[name]
	}

	if effect, ok := m.PlatformEffects[rec.PrimaryPlatform]; ok {
		score += effect
	} else {
		score += m.DefaultPlatformEffect
	}

	return score, nil
}
