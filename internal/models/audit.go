package models

import "time"

// AuditRecord is the persisted trace of one accepted prediction request.
// Created exactly once per request, never mutated afterwards.
type AuditRecord struct {
	ID              string    `json:"id"`
	Age             int       `json:"age"`
	SocialMediaTime float64   `json:"social_media_time"`
	ScreenTime      float64   `json:"screen_time"`
	Platform        string    `json:"platform"`
	Prediction      float64   `json:"prediction"`
	Category        string    `json:"category"`
	CreatedAt       time.Time `json:"created_at"`
}
