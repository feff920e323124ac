package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go4it/highlights/internal/models"
)

const (
	openAIAPIURL = "https://api.openai.com/v1/chat/completions"
	defaultModel = "gpt-4o"

	systemPrompt = "You are a sports video analysis AI that can identify key highlight moments in sports footage."
)

// OpenAIAnalyzer finds highlight candidates by describing the video and the
// policy to a chat-completions model and asking for structured JSON back.
type OpenAIAnalyzer struct {
	config     *Config
	httpClient *retryClient
	apiURL     string
}

func NewOpenAIAnalyzer(config *Config) (*OpenAIAnalyzer, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if config.Model == "" {
		config.Model = defaultModel
	}

	return &OpenAIAnalyzer{
		config: config,
		httpClient: newRetryClient(&http.Client{
			Timeout: config.RequestTimeout,
		}, config.MaxRetries),
		apiURL: openAIAPIURL,
	}, nil
}

type openAIRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (a *OpenAIAnalyzer) AnalyzeVideo(ctx context.Context, video *models.Video, config *models.GeneratorConfig) ([]CandidateHighlight, error) {
	reqBody := openAIRequest{
		Model: a.config.Model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildAnalysisPrompt(video, config)},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.config.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach analysis API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var openAIResp openAIResponse
	if err := json.Unmarshal(body, &openAIResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if openAIResp.Error != nil {
		return nil, fmt.Errorf("OpenAI API error: %s", openAIResp.Error.Message)
	}

	if len(openAIResp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	candidates, err := parseAnalysisResponse(openAIResp.Choices[0].Message.Content, maxHighlightCeiling(config))
	if err != nil {
		return nil, err
	}

	log.Printf("[AI] Analysis of video %s returned %d candidates", video.ID, len(candidates))
	return candidates, nil
}

// Five per video is the hard cap regardless of config; the response is
// truncated to the ceiling on the way out too.
func maxHighlightCeiling(config *models.GeneratorConfig) int {
	count := config.MaxHighlightsPerVideo
	if count <= 0 {
		count = 3
	}
	if count > 5 {
		count = 5
	}
	return count
}

func buildAnalysisPrompt(video *models.Video, config *models.GeneratorConfig) string {
	sportType := config.SportType
	if sportType == models.SportTypeAny || sportType == "" {
		sportType = video.SportType
	}
	if sportType == "" {
		sportType = "general sports"
	}

	highlightTypes := config.HighlightTypes
	if len(highlightTypes) == 0 {
		highlightTypes = []string{"scoring", "skills", "teamwork"}
	}

	duration := "unknown"
	if video.Duration > 0 {
		duration = fmt.Sprintf("%.0f seconds", video.Duration)
	}

	description := video.Description
	if description == "" {
		description = "Not provided"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert sports video analyst specializing in %s. You're analyzing a video with the following information:\n\n", sportType)
	fmt.Fprintf(&b, "Title: %s\n", video.Title)
	fmt.Fprintf(&b, "Description: %s\n", description)
	fmt.Fprintf(&b, "Duration: %s\n", duration)
	fmt.Fprintf(&b, "Sport: %s\n\n", sportType)
	fmt.Fprintf(&b, "Based on this information, identify %d potential highlight moments that would occur in this video.\n", maxHighlightCeiling(config))
	fmt.Fprintf(&b, "Focus on detecting these types of highlights: %s.\n\n", strings.Join(highlightTypes, ", "))
	b.WriteString("For each highlight, provide:\n")
	b.WriteString("1. A short title (5-7 words)\n")
	b.WriteString("2. A brief description (1-2 sentences)\n")
	b.WriteString("3. The estimated start time in seconds\n")
	fmt.Fprintf(&b, "4. The estimated end time in seconds (duration between %.0f and %.0f seconds)\n", config.MinDuration, config.MaxDuration)
	b.WriteString("5. A quality score (0-100) based on how exceptional the moment likely is\n")
	b.WriteString("6. The primary skill being showcased\n")
	b.WriteString("7. A skill level rating (1-100)\n")
	b.WriteString("8. Relevant tags (3-5 tags)\n")
	b.WriteString("9. Game context (optional)\n")
	b.WriteString("10. Brief analysis notes\n\n")
	b.WriteString(`Return your response as a valid JSON object with this exact structure:
{
  "detectedHighlights": [
    {
      "title": "string",
      "description": "string",
      "startTime": number,
      "endTime": number,
      "qualityScore": number,
      "primarySkill": "string",
      "skillLevel": number,
      "tags": ["string"],
      "gameContext": "string",
      "aiAnalysisNotes": "string"
    }
  ]
}
`)
	fmt.Fprintf(&b, "\nEnsure all highlights have durations between %.0f and %.0f seconds, and don't overlap.\n", config.MinDuration, config.MaxDuration)
	fmt.Fprintf(&b, "Make the highlights realistic and specific to %s.\n", sportType)

	return b.String()
}
