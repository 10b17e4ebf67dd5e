package planwriter

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/fitplan/internal/fitness/plan"
	"github.com/2beens/fitplan/internal/fitness/profile"
	"github.com/2beens/fitplan/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	oneHour             = 60 * 60
	draftCacheExpire    = oneHour
	draftCacheSizeMB    = 16
	maxResponseBytes    = 1 << 20
	defaultModel        = "gpt-4o-mini"
	chatCompletionsPath = "/v1/chat/completions"
)

var _ plan.Writer = (*Client)(nil)

var ErrNoChoices = errors.New("no choices in plan writer response")

const systemPrompt = `You are a certified personal trainer and nutritionist.
Given the user's profile as JSON, return a JSON object with:
- "daily_calories", "protein_g", "carbs_g", "fat_g", "water_goal_ml", "step_goal", "workout_goal_per_period" (positive numbers)
- "weekly_schedule": exactly 7 objects, Monday to Sunday, each with "day", "workout_type" (strength, cardio, hiit or recovery),
  "duration_min", "est_calories" (non-negative numbers) and "exercises" (list of strings)
- "recommendations": a short list of strings
Return only valid JSON, no explanation.`

// Client talks to an OpenAI compatible chat completions API.
// It never retries; the plan generator owns the deadline and the fallback.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	cache      *freecache.Cache
}

func NewClient(baseURL, apiKey, model string, httpClient *http.Client) *Client {
	if model == "" {
		model = defaultModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
		cache:      freecache.NewCache(draftCacheSizeMB * 1024 * 1024),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) WritePlan(ctx context.Context, p profile.UserProfile) (_ *plan.Draft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "planwriter.writePlan")
	defer tracing.EndSpanWithErrCheck(span, &err)

	profileJSON, err := canonicalProfileJSON(p)
	if err != nil {
		return nil, err
	}
	cacheKey := cacheKeyFor(profileJSON)

	if cached, cacheErr := c.cache.Get(cacheKey); cacheErr == nil {
		span.SetAttributes(attribute.Bool("planwriter.from-cache", true))
		draft := &plan.Draft{}
		unmarshalErr := json.Unmarshal(cached, draft)
		if unmarshalErr == nil {
			log.Tracef("plan draft found in cache")
			return draft, nil
		}
		log.Errorf("unmarshal cached plan draft: %s", unmarshalErr)
	}
	span.SetAttributes(attribute.Bool("planwriter.from-cache", false))

	content, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: string(profileJSON)},
	})
	if err != nil {
		return nil, err
	}

	draft := &plan.Draft{}
	if err := json.Unmarshal([]byte(content), draft); err != nil {
		return nil, fmt.Errorf("unmarshal plan draft: %w", err)
	}

	// a malformed draft still goes back to the generator, which falls back,
	// but it must not be served again for the next hour
	if _, invalidErr := plan.FromDraft(draft, time.Time{}); invalidErr != nil {
		log.Debugf("plan draft not cached: %s", invalidErr)
		span.SetAttributes(attribute.Bool("planwriter.draft-valid", false))
		return draft, nil
	}
	span.SetAttributes(attribute.Bool("planwriter.draft-valid", true))

	if err := c.cache.Set(cacheKey, []byte(content), draftCacheExpire); err != nil {
		log.Errorf("cache plan draft: %s", err)
	}

	return draft, nil
}

// InvalidateCache drops all cached drafts, e.g. after a model change.
func (c *Client) InvalidateCache() {
	c.cache.Clear()
}

func (c *Client) complete(ctx context.Context, messages []chatMessage) (string, error) {
	reqBody, err := json.Marshal(chatRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    0.2,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionsPath, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("plan writer returned status %d: %s", resp.StatusCode, respBytes)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return chatResp.Choices[0].Message.Content, nil
}

func canonicalProfileJSON(p profile.UserProfile) ([]byte, error) {
	// only the inputs that affect the plan
	b, err := json.Marshal(p.Raw())
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	return b, nil
}

func cacheKeyFor(profileJSON []byte) []byte {
	sum := sha256.Sum256(profileJSON)
	return []byte("plan::" + hex.EncodeToString(sum[:]))
}
