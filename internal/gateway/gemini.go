package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-3-flash-preview"

	maxResponseBytes = 1 << 20
)

// GeminiClient calls the generateContent REST endpoint with a JSON
// response schema.
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type GeminiOption func(*GeminiClient)

func WithBaseURL(u string) GeminiOption {
	return func(c *GeminiClient) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithModel(m string) GeminiOption {
	return func(c *GeminiClient) {
		if strings.TrimSpace(m) != "" {
			c.model = strings.TrimSpace(m)
		}
	}
}

func WithHTTPClient(h *http.Client) GeminiOption {
	return func(c *GeminiClient) { c.client = h }
}

func NewGeminiClient(apiKey string, opts ...GeminiOption) *GeminiClient {
	c := &GeminiClient{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Items       *schema           `json:"items,omitempty"`
	Properties  map[string]schema `json:"properties,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
		ResponseSchema   schema `json:"responseSchema"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

var stepsSchema = schema{
	Type: "ARRAY",
	Items: &schema{
		Type: "OBJECT",
		Properties: map[string]schema{
			"step": {Type: "STRING", Description: "The concrete micro-step"},
		},
		Required: []string{"step"},
	},
}

var thoughtsSchema = schema{
	Type: "OBJECT",
	Properties: map[string]schema{
		"summary":   {Type: "STRING"},
		"keyPoints": {Type: "ARRAY", Items: &schema{Type: "STRING"}},
	},
	Required: []string{"summary", "keyPoints"},
}

func breakDownPrompt(goal string) string {
	return "You are an empathetic cognitive assistant for people with ADHD. " +
		"Break the following goal into exactly 3 to 5 ridiculously simple, concrete " +
		"and non-intimidating micro-steps. Use warm, welcoming language.\n" +
		fmt.Sprintf("Goal: %q", goal)
}

func organizePrompt(text string) string {
	return "A person with ADHD wrote this chaotic stream of consciousness. " +
		"Organize it into a short summary (at most 3 sentences) and a list of 3 key points " +
		"or feelings you identified. Be kind and do not judge.\n" +
		fmt.Sprintf("Text: %q", text)
}

func (c *GeminiClient) BreakDown(ctx context.Context, goal string) ([]Step, error) {
	raw, err := c.generate(ctx, breakDownPrompt(goal), stepsSchema)
	if err != nil {
		return nil, err
	}
	var steps []Step
	if err := json.Unmarshal([]byte(raw), &steps); err != nil {
		return nil, fmt.Errorf("%w: steps: %v", ErrDecode, err)
	}
	return steps, nil
}

func (c *GeminiClient) Organize(ctx context.Context, text string) (Thoughts, error) {
	raw, err := c.generate(ctx, organizePrompt(text), thoughtsSchema)
	if err != nil {
		return Thoughts{}, err
	}
	var out Thoughts
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return Thoughts{}, fmt.Errorf("%w: thoughts: %v", ErrDecode, err)
	}
	return out, nil
}

// generate returns the text of the first candidate part.
func (c *GeminiClient) generate(ctx context.Context, prompt string, s schema) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	var req generateRequest
	req.Contents = []content{{Parts: []part{{Text: prompt}}}}
	req.GenerationConfig.ResponseMimeType = "application/json"
	req.GenerationConfig.ResponseSchema = s

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrTransport, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("%w (%d): %s", ErrStatus, resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("%w (%d)", ErrStatus, resp.StatusCode)
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrDecode)
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
