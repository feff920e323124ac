package generator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go4it/highlights/internal/ai"
	"github.com/go4it/highlights/internal/models"
)

func TestSchedulerSweepsOnInterval(t *testing.T) {
	video := models.NewVideo("Game", "", "basketball", "/videos/game.mp4", 100)
	h := newBatchHarness(newFakeVideoStore(video), newFakeConfigStore(basketballConfig()))
	h.analyzer.candidates = []ai.CandidateHighlight{
		{Title: "Dunk", StartTime: 0, EndTime: 8, QualityScore: 90},
	}

	scheduler := NewScheduler(h.batch, SchedulerConfig{Interval: 20 * time.Millisecond})
	scheduler.Start()
	defer scheduler.Stop()

	require.Eventually(t, func() bool {
		return h.videos.isAnalyzed(video.ID)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerSkipsOverlappingSweep(t *testing.T) {
	video := models.NewVideo("Game", "", "basketball", "/videos/game.mp4", 100)
	h := newBatchHarness(newFakeVideoStore(video), newFakeConfigStore(basketballConfig()))
	h.analyzer.delay = 150 * time.Millisecond

	scheduler := NewScheduler(h.batch, SchedulerConfig{Interval: 20 * time.Millisecond})
	scheduler.Start()

	// Several ticks fire while the first sweep is stuck in analysis; all of
	// them must be dropped rather than queued behind it.
	time.Sleep(100 * time.Millisecond)
	scheduler.Stop()

	assert.Equal(t, 1, h.analyzer.callCount())
}

func TestSchedulerForceGenerate(t *testing.T) {
	video := models.NewVideo("Game", "", "basketball", "/videos/game.mp4", 100)
	video.Analyzed = true
	h := newBatchHarness(newFakeVideoStore(video), newFakeConfigStore(basketballConfig()))
	h.analyzer.candidates = []ai.CandidateHighlight{
		{Title: "Dunk", StartTime: 0, EndTime: 8, QualityScore: 90},
	}

	scheduler := NewScheduler(h.batch, SchedulerConfig{Interval: time.Hour})

	outcome := scheduler.ForceGenerate(context.Background(), video.ID, "coach-7")

	require.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.HighlightCount)
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	h := newBatchHarness(newFakeVideoStore(), newFakeConfigStore())

	scheduler := NewScheduler(h.batch, SchedulerConfig{Interval: time.Hour})
	scheduler.Start()
	scheduler.Stop()
	scheduler.Stop()
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	h := newBatchHarness(newFakeVideoStore(), newFakeConfigStore())

	scheduler := NewScheduler(h.batch, SchedulerConfig{})
	scheduler.Stop() // must not block waiting on a loop that never ran
}

func TestSchedulerDefaultInterval(t *testing.T) {
	h := newBatchHarness(newFakeVideoStore(), newFakeConfigStore())

	scheduler := NewScheduler(h.batch, SchedulerConfig{})
	assert.Equal(t, 24*time.Hour, scheduler.interval)
	assert.Equal(t, "scheduler", scheduler.actor)
}
