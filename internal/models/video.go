package models

import (
	"time"

	"github.com/google/uuid"
)

// Video is a stored game recording. SportType may be empty when the uploader
// did not tag the video; Duration is approximate and 0 when unknown.
type Video struct {
	ID          string
	Title       string
	Description string
	SportType   string
	Duration    float64
	FilePath    string
	UploadTime  time.Time
	Analyzed    bool
}

func NewVideo(title, description, sportType, filePath string, duration float64) *Video {
	return &Video{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		SportType:   sportType,
		Duration:    duration,
		FilePath:    filePath,
		UploadTime:  time.Now(),
	}
}
