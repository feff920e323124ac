package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/go4it/highlights/internal/generator"
	"github.com/go4it/highlights/internal/models"
)

// Pipeline is the slice of the generator the API triggers.
type Pipeline interface {
	ProcessBacklog(ctx context.Context, actor string) generator.BatchOutcome
	ForceGenerate(ctx context.Context, videoID, actor string) generator.RunOutcome
}

type HighlightLister interface {
	ListByVideo(ctx context.Context, videoID string) ([]*models.Highlight, error)
}

type App struct {
	Pipeline   Pipeline
	Configs    generator.ConfigStore
	Highlights HighlightLister
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// actor identifies who triggered the run, for the created_by audit field.
func actor(r *http.Request) string {
	if id := r.Header.Get("X-Actor-ID"); id != "" {
		return id
	}
	return "system"
}

func (app *App) ProcessAllHandler(w http.ResponseWriter, r *http.Request) {
	outcome := app.Pipeline.ProcessBacklog(r.Context(), actor(r))

	status := http.StatusOK
	if !outcome.Success {
		log.Printf("[API] Backlog processing failed: %v", outcome.Err)
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, outcome)
}

func (app *App) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")

	outcome := app.Pipeline.ForceGenerate(r.Context(), videoID, actor(r))
	writeJSON(w, runStatus(outcome), outcome)
}

func runStatus(outcome generator.RunOutcome) int {
	if outcome.Success {
		return http.StatusOK
	}
	switch {
	case errors.Is(outcome.Err, generator.ErrVideoNotFound),
		errors.Is(outcome.Err, generator.ErrConfigNotFound):
		return http.StatusNotFound
	case errors.Is(outcome.Err, generator.ErrConfigMismatch):
		return http.StatusConflict
	case errors.Is(outcome.Err, generator.ErrAnalysisUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (app *App) VideoHighlightsHandler(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")

	highlights, err := app.Highlights.ListByVideo(r.Context(), videoID)
	if err != nil {
		log.Printf("[API] Failed to list highlights for video %s: %v", videoID, err)
		writeError(w, http.StatusInternalServerError, "Failed to load highlights")
		return
	}

	out := make([]highlightResponse, 0, len(highlights))
	for _, h := range highlights {
		out = append(out, toHighlightResponse(h))
	}
	writeJSON(w, http.StatusOK, out)
}

func (app *App) ListConfigsHandler(w http.ResponseWriter, r *http.Request) {
	configs, err := app.Configs.List(r.Context())
	if err != nil {
		log.Printf("[API] Failed to list configs: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to load configs")
		return
	}

	out := make([]configResponse, 0, len(configs))
	for _, c := range configs {
		out = append(out, toConfigResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

type createConfigRequest struct {
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	SportType             string   `json:"sportType"`
	HighlightTypes        []string `json:"highlightTypes"`
	MinDuration           float64  `json:"minDuration"`
	MaxDuration           float64  `json:"maxDuration"`
	QualityThreshold      float64  `json:"qualityThreshold"`
	MaxHighlightsPerVideo int      `json:"maxHighlightsPerVideo"`
}

func (req *createConfigRequest) validate() string {
	switch {
	case req.Name == "":
		return "name is required"
	case req.SportType == "":
		return "sportType is required"
	case req.MinDuration < 0 || req.MaxDuration <= 0:
		return "duration bounds must be positive"
	case req.MinDuration >= req.MaxDuration:
		return "minDuration must be below maxDuration"
	case req.QualityThreshold < 0 || req.QualityThreshold > 100:
		return "qualityThreshold must be between 0 and 100"
	case req.MaxHighlightsPerVideo < 0:
		return "maxHighlightsPerVideo must not be negative"
	default:
		return ""
	}
}

func (app *App) CreateConfigHandler(w http.ResponseWriter, r *http.Request) {
	var req createConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	config := models.NewGeneratorConfig(req.Name, req.Description, req.SportType)
	config.HighlightTypes = req.HighlightTypes
	config.MinDuration = req.MinDuration
	config.MaxDuration = req.MaxDuration
	config.QualityThreshold = req.QualityThreshold
	config.MaxHighlightsPerVideo = req.MaxHighlightsPerVideo

	if err := app.Configs.Insert(r.Context(), config); err != nil {
		log.Printf("[API] Failed to create config: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create config")
		return
	}

	writeJSON(w, http.StatusCreated, toConfigResponse(config))
}

type highlightResponse struct {
	ID               string   `json:"id"`
	VideoID          string   `json:"videoId"`
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	StartTime        float64  `json:"startTime"`
	EndTime          float64  `json:"endTime"`
	ClipPath         string   `json:"clipPath"`
	ThumbnailPath    string   `json:"thumbnailPath,omitempty"`
	CreatedBy        string   `json:"createdBy,omitempty"`
	AIGenerated      bool     `json:"aiGenerated"`
	Tags             []string `json:"tags"`
	QualityScore     float64  `json:"qualityScore"`
	PrimarySkill     string   `json:"primarySkill,omitempty"`
	SkillLevel       float64  `json:"skillLevel"`
	GameContext      string   `json:"gameContext,omitempty"`
	AnalysisNotes    string   `json:"aiAnalysisNotes,omitempty"`
	Featured         bool     `json:"featured"`
	HomePageEligible bool     `json:"homePageEligible"`
	CreatedAt        string   `json:"createdAt"`
}

func toHighlightResponse(h *models.Highlight) highlightResponse {
	return highlightResponse{
		ID:               h.ID,
		VideoID:          h.VideoID,
		Title:            h.Title,
		Description:      h.Description,
		StartTime:        h.StartTime,
		EndTime:          h.EndTime,
		ClipPath:         h.ClipPath,
		ThumbnailPath:    h.ThumbnailPath,
		CreatedBy:        h.CreatedBy,
		AIGenerated:      h.AIGenerated,
		Tags:             h.Tags,
		QualityScore:     h.QualityScore,
		PrimarySkill:     h.PrimarySkill,
		SkillLevel:       h.SkillLevel,
		GameContext:      h.GameContext,
		AnalysisNotes:    h.AnalysisNotes,
		Featured:         h.Featured,
		HomePageEligible: h.HomePageEligible,
		CreatedAt:        h.CreatedAt.Format(time.RFC3339),
	}
}

type configResponse struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Description           string   `json:"description,omitempty"`
	SportType             string   `json:"sportType"`
	HighlightTypes        []string `json:"highlightTypes"`
	MinDuration           float64  `json:"minDuration"`
	MaxDuration           float64  `json:"maxDuration"`
	QualityThreshold      float64  `json:"qualityThreshold"`
	MaxHighlightsPerVideo int      `json:"maxHighlightsPerVideo"`
	Active                bool     `json:"active"`
	CreatedAt             string   `json:"createdAt"`
	LastRun               string   `json:"lastRun,omitempty"`
}

func toConfigResponse(c *models.GeneratorConfig) configResponse {
	resp := configResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		Description:           c.Description,
		SportType:             c.SportType,
		HighlightTypes:        c.HighlightTypes,
		MinDuration:           c.MinDuration,
		MaxDuration:           c.MaxDuration,
		QualityThreshold:      c.QualityThreshold,
		MaxHighlightsPerVideo: c.MaxHighlightsPerVideo,
		Active:                c.Active,
		CreatedAt:             c.CreatedAt.Format(time.RFC3339),
	}
	if c.LastRun != nil {
		resp.LastRun = c.LastRun.Format(time.RFC3339)
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
