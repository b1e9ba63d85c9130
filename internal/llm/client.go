// Package llm wraps an OpenAI-compatible chat-completions backend used to
// refine rule-extracted tender information. Every call reports an explicit
// status so callers can tell "no data found" apart from "backend unavailable";
// without an API key the client is disabled and all calls report that.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Status classifies the outcome of a refinement call.
type Status string

const (
	// StatusOK means the backend returned usable content.
	StatusOK Status = "ok"
	// StatusEmpty means the call succeeded but yielded nothing usable.
	StatusEmpty Status = "empty"
	// StatusDisabled means no API key is configured; the call was not made.
	StatusDisabled Status = "disabled"
	// StatusUnavailable means the backend errored or could not be reached.
	StatusUnavailable Status = "unavailable"
)

// StructuredInfo is the shape the refinement pass extracts.
type StructuredInfo struct {
	TechnicalSpecs string `json:"technical_specs"`
	Delivery       string `json:"delivery"`
	ProjectName    string `json:"project_name"`
	Ministry       string `json:"ministry"`
}

// maxPromptChars bounds how much document text is sent per request.
const maxPromptChars = 5000

// Client talks to a chat-completions endpoint.
type Client struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
}

// NewClient creates a Client. An empty apiKey produces a disabled client;
// its methods still work and report StatusDisabled.
func NewClient(baseURL, model, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Enabled reports whether the client has an API key.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete performs one chat-completions round trip.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm backend returned status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", nil
	}
	return out.Choices[0].Message.Content, nil
}

// jsonBlock pulls the first {...} object out of a free-form model reply.
var jsonBlock = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractStructuredInfo asks the backend for technical specs, delivery,
// project name, and ministry from document text.
func (c *Client) ExtractStructuredInfo(ctx context.Context, text string) (StructuredInfo, Status) {
	var info StructuredInfo
	if !c.Enabled() {
		return info, StatusDisabled
	}
	if strings.TrimSpace(text) == "" {
		return info, StatusEmpty
	}
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	system := "You are a tender information extraction expert. " +
		"Extract technical specifications, delivery deadlines, and issuing details from tender documents. " +
		"Return structured JSON."
	user := fmt.Sprintf(`Extract the following information from this tender document text:

%s

Extract ONLY these fields:
1. Technical specifications (detailed, if present in document)
2. Delivery deadline/period
3. Project name (the name/title of the project/tender)
4. Ministry (the ministry or department issuing the tender)

Return as JSON with these keys: technical_specs, delivery, project_name, ministry`, text)

	reply, err := c.complete(ctx, system, user)
	if err != nil {
		return info, StatusUnavailable
	}

	block := jsonBlock.FindString(reply)
	if block == "" {
		return info, StatusEmpty
	}
	if err := json.Unmarshal([]byte(block), &info); err != nil {
		return StructuredInfo{}, StatusEmpty
	}
	if info == (StructuredInfo{}) {
		return info, StatusEmpty
	}
	return info, StatusOK
}

// FormatSpecs asks the backend to reformat raw specification strings into
// clean bullet points. On any non-OK status the caller should keep its
// rule-based formatting.
func (c *Client) FormatSpecs(ctx context.Context, specs []string) (string, Status) {
	if !c.Enabled() {
		return "", StatusDisabled
	}
	if len(specs) == 0 {
		return "", StatusEmpty
	}

	system := "You are a technical specification formatter. " +
		"Format technical specifications into clean, structured bullet points. " +
		"Remove redundancy and organize information clearly."
	user := fmt.Sprintf(`Format the following technical specifications into clean bullet points:

%s

Output format:
- Each specification as a clear bullet point
- Remove redundant information
- Organize by category if applicable
- Keep technical details precise`, strings.Join(specs, "\n"))

	reply, err := c.complete(ctx, system, user)
	if err != nil {
		return "", StatusUnavailable
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", StatusEmpty
	}
	return reply, StatusOK
}
