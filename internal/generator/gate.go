package generator

import "github.com/go4it/highlights/internal/ai"

// Fixed gate policy: these are properties of the gate, not of individual
// configs. TODO: revisit making them per-config once curation feedback shows
// sports differ on what belongs on the home page.
const (
	FeaturedThreshold         = 85
	HomePageEligibleThreshold = 90
)

// FilterDuration drops candidates whose window falls outside the config's
// duration bounds. Runs before the quality gate so an out-of-contract
// adapter response can never reach it. Order-preserving, input untouched.
func FilterDuration(candidates []ai.CandidateHighlight, minDuration, maxDuration float64) []ai.CandidateHighlight {
	filtered := make([]ai.CandidateHighlight, 0, len(candidates))
	for _, c := range candidates {
		d := c.Duration()
		if d < minDuration || d > maxDuration {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

// FilterQuality keeps candidates at or above the threshold. Order-preserving,
// input untouched.
func FilterQuality(candidates []ai.CandidateHighlight, threshold float64) []ai.CandidateHighlight {
	filtered := make([]ai.CandidateHighlight, 0, len(candidates))
	for _, c := range candidates {
		if c.QualityScore < threshold {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

func Featured(qualityScore float64) bool {
	return qualityScore >= FeaturedThreshold
}

func HomePageEligible(qualityScore float64) bool {
	return qualityScore >= HomePageEligibleThreshold
}
