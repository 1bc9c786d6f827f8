package models

// TelemetryRecord is the validated, normalized representation of a user's
// reported usage behavior. Optional fields are always populated, either from
// the payload or from the declared defaults, so downstream components never
// special-case "missing".
type TelemetryRecord struct {
	Age                  int     `json:"age"`
	SocialMediaTimeHours float64 `json:"socialMediaTimeHours"`
	ScreenTimeHours      float64 `json:"screenTimeHours"`
	PrimaryPlatform      string  `json:"primaryPlatform"`

	NotificationFrequency int     `json:"notificationFrequency"`
	MessagingTimeHours    float64 `json:"messagingTimeHours"`
	VideoTimeHours        float64 `json:"videoTimeHours"`
	GamingTimeHours       float64 `json:"gamingTimeHours"`
	MusicTimeHours        float64 `json:"musicTimeHours"`
	SleepQuality          int     `json:"sleepQuality"`
	TechSavviness         int     `json:"techSavviness"`
	PreferredDevice       string  `json:"preferredDevice"`
	EntertainmentPlatform string  `json:"entertainmentPlatform"`
	SocialMediaGoal       string  `json:"socialMediaGoal"`
}
