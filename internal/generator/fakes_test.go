package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/go4it/highlights/internal/ai"
	"github.com/go4it/highlights/internal/media"
	"github.com/go4it/highlights/internal/models"
)

type fakeVideoStore struct {
	mu       sync.Mutex
	order    []string
	videos   map[string]*models.Video
	analyzed map[string]bool
	listErr  error
	getErr   error
}

func newFakeVideoStore(videos ...*models.Video) *fakeVideoStore {
	s := &fakeVideoStore{
		videos:   make(map[string]*models.Video),
		analyzed: make(map[string]bool),
	}
	for _, v := range videos {
		s.order = append(s.order, v.ID)
		s.videos[v.ID] = v
	}
	return s
}

func (s *fakeVideoStore) GetByID(_ context.Context, id string) (*models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	video, ok := s.videos[id]
	if !ok {
		return nil, fmt.Errorf("video %s: %w", id, ErrVideoNotFound)
	}
	return video, nil
}

func (s *fakeVideoStore) ListUnanalyzed(_ context.Context) ([]*models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var unanalyzed []*models.Video
	for _, id := range s.order {
		if !s.videos[id].Analyzed && !s.analyzed[id] {
			unanalyzed = append(unanalyzed, s.videos[id])
		}
	}
	return unanalyzed, nil
}

func (s *fakeVideoStore) MarkAnalyzed(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[id]; !ok {
		return fmt.Errorf("video %s: %w", id, ErrVideoNotFound)
	}
	s.analyzed[id] = true
	return nil
}

func (s *fakeVideoStore) isAnalyzed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzed[id]
}

type fakeConfigStore struct {
	mu       sync.Mutex
	configs  []*models.GeneratorConfig
	lastRuns map[string]time.Time
	listErr  error
	updErr   error
}

func newFakeConfigStore(configs ...*models.GeneratorConfig) *fakeConfigStore {
	return &fakeConfigStore{configs: configs, lastRuns: make(map[string]time.Time)}
}

func (s *fakeConfigStore) GetByID(_ context.Context, id string) (*models.GeneratorConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, config := range s.configs {
		if config.ID == id {
			return config, nil
		}
	}
	return nil, fmt.Errorf("config %s: %w", id, ErrConfigNotFound)
}

func (s *fakeConfigStore) List(_ context.Context) ([]*models.GeneratorConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]*models.GeneratorConfig(nil), s.configs...), nil
}

func (s *fakeConfigStore) ListActive(_ context.Context) ([]*models.GeneratorConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var active []*models.GeneratorConfig
	for _, config := range s.configs {
		if config.Active {
			active = append(active, config)
		}
	}
	return active, nil
}

func (s *fakeConfigStore) Insert(_ context.Context, config *models.GeneratorConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs = append(s.configs, config)
	return nil
}

func (s *fakeConfigStore) UpdateLastRun(_ context.Context, id string, lastRun time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updErr != nil {
		return s.updErr
	}
	s.lastRuns[id] = lastRun
	return nil
}

func (s *fakeConfigStore) lastRun(id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.lastRuns[id]
	return t, ok
}

type fakeHighlightStore struct {
	mu       sync.Mutex
	inserted []*models.Highlight
	insErr   error
}

func (s *fakeHighlightStore) Insert(_ context.Context, highlight *models.Highlight) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insErr != nil {
		return "", s.insErr
	}
	highlight.ID = fmt.Sprintf("hl-%d", len(s.inserted)+1)
	s.inserted = append(s.inserted, highlight)
	return highlight.ID, nil
}

func (s *fakeHighlightStore) ListByVideo(_ context.Context, videoID string) ([]*models.Highlight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Highlight
	for _, h := range s.inserted {
		if h.VideoID == videoID {
			out = append(out, h)
		}
	}
	return out, nil
}

// fakeAnalyzer hands back canned candidates, optionally keyed by video id,
// with an optional delay to exercise overlap behavior.
type fakeAnalyzer struct {
	mu         sync.Mutex
	candidates []ai.CandidateHighlight
	byVideo    map[string][]ai.CandidateHighlight
	err        error
	delay      time.Duration
	calls      int
}

func (a *fakeAnalyzer) AnalyzeVideo(ctx context.Context, video *models.Video, _ *models.GeneratorConfig) ([]ai.CandidateHighlight, error) {
	a.mu.Lock()
	a.calls++
	delay := a.delay
	a.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return nil, a.err
	}
	if a.byVideo != nil {
		return a.byVideo[video.ID], nil
	}
	return a.candidates, nil
}

func (a *fakeAnalyzer) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

type fakeExtractor struct {
	mu         sync.Mutex
	failTitles map[string]bool
	extracted  []string
}

func (e *fakeExtractor) Extract(_ context.Context, _ string, _, _ float64, title string) (*media.Extraction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failTitles[title] {
		return nil, fmt.Errorf("ffmpeg exited with status 1")
	}
	e.extracted = append(e.extracted, title)
	return &media.Extraction{
		ClipPath:      "/tmp/work/" + title + ".mp4",
		ThumbnailPath: "/tmp/work/" + title + ".jpg",
	}, nil
}

type fakeClipStore struct {
	mu     sync.Mutex
	err    error
	stored []string
}

func (s *fakeClipStore) Store(_ context.Context, localPath, category string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	durable := "/uploads/" + category + "/" + filepath.Base(localPath)
	s.stored = append(s.stored, durable)
	return durable, nil
}
