package generator

import (
	"time"

	"github.com/go4it/highlights/internal/ai"
	"github.com/go4it/highlights/internal/models"
)

// BuildHighlight assembles the persistable record for an accepted candidate.
// Pure: the id is assigned by the highlight store on insert.
func BuildHighlight(videoID, actor string, candidate ai.CandidateHighlight, clipPath, thumbnailPath string) *models.Highlight {
	return &models.Highlight{
		VideoID:          videoID,
		Title:            candidate.Title,
		Description:      candidate.Description,
		StartTime:        candidate.StartTime,
		EndTime:          candidate.EndTime,
		ClipPath:         clipPath,
		ThumbnailPath:    thumbnailPath,
		CreatedBy:        actor,
		AIGenerated:      true,
		Tags:             candidate.Tags,
		QualityScore:     candidate.QualityScore,
		PrimarySkill:     candidate.PrimarySkill,
		SkillLevel:       candidate.SkillLevel,
		GameContext:      candidate.GameContext,
		AnalysisNotes:    candidate.AnalysisNotes,
		Featured:         Featured(candidate.QualityScore),
		HomePageEligible: HomePageEligible(candidate.QualityScore),
		CreatedAt:        time.Now(),
	}
}
