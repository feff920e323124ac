package models

import "time"

// Highlight is the persisted artifact of an accepted candidate: one extracted
// clip plus its metadata. The pipeline creates highlights exactly once and
// never mutates them afterwards.
type Highlight struct {
	ID               string
	VideoID          string
	Title            string
	Description      string
	StartTime        float64
	EndTime          float64
	ClipPath         string
	ThumbnailPath    string
	CreatedBy        string
	AIGenerated      bool
	Tags             []string
	QualityScore     float64
	PrimarySkill     string
	SkillLevel       float64
	GameContext      string
	AnalysisNotes    string
	Featured         bool
	HomePageEligible bool
	CreatedAt        time.Time
}
