package ai

import (
	"encoding/json"
	"fmt"
)

// CandidateHighlight is an in-memory highlight proposal from the analysis
// capability. Candidates are never persisted directly; they pass through the
// duration filter and quality gate first.
type CandidateHighlight struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	StartTime     float64  `json:"startTime"`
	EndTime       float64  `json:"endTime"`
	QualityScore  float64  `json:"qualityScore"`
	PrimarySkill  string   `json:"primarySkill"`
	SkillLevel    float64  `json:"skillLevel"`
	Tags          []string `json:"tags"`
	GameContext   string   `json:"gameContext,omitempty"`
	AnalysisNotes string   `json:"aiAnalysisNotes,omitempty"`
}

func (c CandidateHighlight) Duration() float64 {
	return c.EndTime - c.StartTime
}

type analysisResponse struct {
	DetectedHighlights []CandidateHighlight `json:"detectedHighlights"`
}

// parseAnalysisResponse decodes the model's JSON payload, drops malformed
// candidates, and truncates the list to maxHighlights. Order is preserved.
func parseAnalysisResponse(content string, maxHighlights int) ([]CandidateHighlight, error) {
	var resp analysisResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, fmt.Errorf("malformed analysis response: %w", err)
	}

	candidates := make([]CandidateHighlight, 0, len(resp.DetectedHighlights))
	for _, c := range resp.DetectedHighlights {
		if !validCandidate(c) {
			continue
		}
		candidates = append(candidates, c)
	}

	if maxHighlights > 0 && len(candidates) > maxHighlights {
		candidates = candidates[:maxHighlights]
	}

	return candidates, nil
}

func validCandidate(c CandidateHighlight) bool {
	if c.Title == "" {
		return false
	}
	if c.StartTime < 0 || c.EndTime <= c.StartTime {
		return false
	}
	if c.QualityScore < 0 || c.QualityScore > 100 {
		return false
	}
	if c.SkillLevel < 0 || c.SkillLevel > 100 {
		return false
	}
	return true
}
