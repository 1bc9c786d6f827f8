package normalizer

import (
	"encoding/json"
	"reflect"
	"testing"
)

func validPayload() map[string]any {
	return map[string]any{
		"age":                  float64(25),
		"socialMediaTimeHours": float64(2),
		"screenTimeHours":      float64(9),
		"primaryPlatform":      "Instagram",
	}
}

func TestNormalizeValidPayload(t *testing.T) {
	rec, errs := Normalize(validPayload())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if rec.Age != 25 {
		t.Errorf("age = %d, want 25", rec.Age)
	}
	if rec.ScreenTimeHours != 9 {
		t.Errorf("screenTimeHours = %g, want 9", rec.ScreenTimeHours)
	}
	if rec.PrimaryPlatform != "Instagram" {
		t.Errorf("primaryPlatform = %q, want Instagram", rec.PrimaryPlatform)
	}
}

func TestNormalizeCoercesNumericStrings(t *testing.T) {
	payload := validPayload()
	payload["age"] = "25"
	payload["screenTimeHours"] = "9.5"

	rec, errs := Normalize(payload)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if rec.Age != 25 {
		t.Errorf("age = %d, want 25", rec.Age)
	}
	if rec.ScreenTimeHours != 9.5 {
		t.Errorf("screenTimeHours = %g, want 9.5", rec.ScreenTimeHours)
	}
}

func TestNormalizeMissingAge(t *testing.T) {
	payload := validPayload()
	delete(payload, "age")

	_, errs := Normalize(payload)
	want := []string{"Missing required field: age"}
	if !reflect.DeepEqual(errs, want) {
		t.Fatalf("errs = %v, want %v", errs, want)
	}
}

func TestNormalizeCollectsAllMissingFields(t *testing.T) {
	_, errs := Normalize(map[string]any{})
	if len(errs) != 4 {
		t.Fatalf("got %d errors, want 4: %v", len(errs), errs)
	}
}

func TestNormalizeEmptyStringIsMissing(t *testing.T) {
	payload := validPayload()
	payload["primaryPlatform"] = "   "

	_, errs := Normalize(payload)
	want := []string{"Missing required field: primaryPlatform"}
	if !reflect.DeepEqual(errs, want) {
		t.Fatalf("errs = %v, want %v", errs, want)
	}
}

func TestNormalizeNonStringPlatform(t *testing.T) {
	payload := validPayload()
	payload["primaryPlatform"] = float64(5)

	_, errs := Normalize(payload)
	want := []string{"Field primaryPlatform must be a string"}
	if !reflect.DeepEqual(errs, want) {
		t.Fatalf("errs = %v, want %v", errs, want)
	}
}

func TestNormalizeRangeViolations(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value any
	}{
		{"age too high", "age", float64(300)},
		{"age zero", "age", float64(0)},
		{"age fractional", "age", float64(25.5)},
		{"negative hours", "screenTimeHours", float64(-1)},
		{"hours over a day", "socialMediaTimeHours", float64(25)},
		{"non-numeric", "age", "twenty"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validPayload()
			payload[tc.key] = tc.value
			_, errs := Normalize(payload)
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
			}
		})
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	rec, errs := Normalize(validPayload())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if rec.SleepQuality != 5 {
		t.Errorf("sleepQuality = %d, want default 5", rec.SleepQuality)
	}
	if rec.PreferredDevice != "Unknown" {
		t.Errorf("preferredDevice = %q, want Unknown", rec.PreferredDevice)
	}
	if rec.SocialMediaGoal != "None" {
		t.Errorf("socialMediaGoal = %q, want None", rec.SocialMediaGoal)
	}
	if rec.GamingTimeHours != 0 {
		t.Errorf("gamingTimeHours = %g, want 0", rec.GamingTimeHours)
	}
}

func TestNormalizeIgnoresUnknownKeys(t *testing.T) {
	payload := validPayload()
	payload["favoriteColor"] = "green"

	_, errs := Normalize(payload)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestCanonicalPlatform(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Instgram", "Instagram"},
		{"Instagram", "Instagram"},
		{"instagram", "Instagram"},
		{"Youtube", "YouTube"},
		{"  tiktok  ", "TikTok"},
		{"facebok", "Facebook"},
		{"MySpace", "MySpace"},
	}
	for _, tc := range cases {
		if got := CanonicalPlatform(tc.in); got != tc.want {
			t.Errorf("CanonicalPlatform(%q) = %q, want %q", tc.in, got, tc.want)
		}
		// Applying twice must be a no-op.
		if got := CanonicalPlatform(CanonicalPlatform(tc.in)); got != tc.want {
			t.Errorf("CanonicalPlatform twice (%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	payload := validPayload()
	payload["primaryPlatform"] = "Instgram"
	payload["sleepQuality"] = float64(7)

	once, errs := Normalize(payload)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	data, err := json.Marshal(once)
	if err != nil {
		t.Fatal(err)
	}
	var roundTrip map[string]any
	if err := json.Unmarshal(data, &roundTrip); err != nil {
		t.Fatal(err)
	}

	twice, errs := Normalize(roundTrip)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors on second pass: %v", errs)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalize not idempotent:\nonce  = %+v\ntwice = %+v", once, twice)
	}
}
