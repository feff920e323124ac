package media

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Extraction holds local paths to a freshly cut clip and its thumbnail.
// The files live in the extractor's work directory until a ClipStore
// publishes them somewhere durable.
type Extraction struct {
	ClipPath      string
	ThumbnailPath string
}

// Extractor cuts a sub-clip and a representative thumbnail out of a source
// video. Failure is expected per-candidate (unreadable source, full disk) and
// must not abort sibling extractions.
type Extractor interface {
	Extract(ctx context.Context, sourcePath string, start, end float64, title string) (*Extraction, error)
}

type FFmpegExtractor struct {
	ffmpegPath string
	workDir    string
	timeout    time.Duration
}

func NewFFmpegExtractor(workDir string, timeout time.Duration) (*FFmpegExtractor, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	if workDir == "" {
		workDir = filepath.Join(os.TempDir(), "highlights-clips")
	}
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}

	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &FFmpegExtractor{
		ffmpegPath: ffmpegPath,
		workDir:    workDir,
		timeout:    timeout,
	}, nil
}

func (fe *FFmpegExtractor) Extract(ctx context.Context, sourcePath string, start, end float64, title string) (*Extraction, error) {
	if _, err := os.Stat(sourcePath); err != nil {
		return nil, fmt.Errorf("source video not accessible: %w", err)
	}
	if end <= start {
		return nil, fmt.Errorf("invalid clip window: start=%.2f end=%.2f", start, end)
	}

	base := clipBasename(title)
	clipPath := filepath.Join(fe.workDir, base+".mp4")
	thumbnailPath := filepath.Join(fe.workDir, base+".jpg")

	ctx, cancel := context.WithTimeout(ctx, fe.timeout)
	defer cancel()

	if err := fe.run(ctx,
		"-i", sourcePath,
		"-ss", fmt.Sprintf("%.2f", start),
		"-to", fmt.Sprintf("%.2f", end),
		"-c", "copy",
		"-y", clipPath,
	); err != nil {
		return nil, fmt.Errorf("failed to cut clip: %w", err)
	}

	if err := fe.run(ctx,
		"-i", clipPath,
		"-ss", "1",
		"-vframes", "1",
		"-q:v", "2",
		"-y", thumbnailPath,
	); err != nil {
		os.Remove(clipPath)
		return nil, fmt.Errorf("failed to generate thumbnail: %w", err)
	}

	log.Printf("[MEDIA] Extracted clip %s (%.2fs to %.2fs)", base, start, end)

	return &Extraction{
		ClipPath:      clipPath,
		ThumbnailPath: thumbnailPath,
	}, nil
}

func (fe *FFmpegExtractor) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, fe.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.Printf("[MEDIA] ffmpeg stderr: %s", stderr.String())
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}

func (fe *FFmpegExtractor) Cleanup() error {
	return os.RemoveAll(fe.workDir)
}

// clipBasename builds a filename-safe base from the highlight title plus a
// short unique suffix so re-runs never clobber earlier clips.
func clipBasename(title string) string {
	sanitized := strings.ToLower(title)
	sanitized = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return '-'
	}, sanitized)
	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}
	sanitized = strings.Trim(sanitized, "-")
	if len(sanitized) > 20 {
		sanitized = strings.Trim(sanitized[:20], "-")
	}
	if sanitized == "" {
		sanitized = "highlight"
	}

	return sanitized + "-" + uuid.New().String()[:8]
}
