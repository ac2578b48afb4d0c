package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/hypothesis"
)

// Client calls an OpenAI-compatible chat completion endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	HTTPClient *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ReviewHypothesis asks the model for a skeptical second opinion on a
// rule-based hypothesis. The prompt carries only the computed evidence, so
// the reviewer cannot invent counts that were never observed.
func (c *Client) ReviewHypothesis(ctx context.Context, hyp hypothesis.Hypothesis) (string, error) {
	system := "You are a skeptical historical-linguistics reviewer. Assess ONLY the stated evidence; do not invent observations. Flag overreach."
	return c.Chat(ctx, system, formatPrompt(hyp))
}

func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	if c.BaseURL == "" || c.Model == "" {
		return "", fmt.Errorf("llm: base URL and model required")
	}
	messages := []chatMessage{{Role: "system", Content: system}, {Role: "user", Content: user}}
	payload, err := c.send(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}
	return payload.Choices[0].Message.Content, nil
}

func (c *Client) send(ctx context.Context, messages []chatMessage) (*chatResponse, error) {
	reqBody, err := json.Marshal(chatRequest{Model: c.Model, Messages: messages})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("llm error: %s", payload.Error.Message)
	}
	return &payload, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

func formatPrompt(hyp hypothesis.Hypothesis) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Token family %q (%d tokens).\n", hyp.Family, hyp.Size)
	fmt.Fprintf(&buf, "Hypothesis: %s\n", hyp.Statement)
	fmt.Fprintf(&buf, "Evidence:\n")
	if hyp.Evidence.Prefix != nil {
		fmt.Fprintf(&buf, "- shared prefix %q in %d tokens\n", hyp.Evidence.Prefix.Affix, hyp.Evidence.Prefix.Count)
	}
	if hyp.Evidence.Suffix != nil {
		fmt.Fprintf(&buf, "- shared suffix %q in %d tokens\n", hyp.Evidence.Suffix.Affix, hyp.Evidence.Suffix.Count)
	}
	if len(hyp.Evidence.Substrings) > 0 {
		fmt.Fprintf(&buf, "- recurring substrings: %s\n", strings.Join(hyp.Evidence.Substrings, ", "))
	}
	fmt.Fprintf(&buf, "\nRespond with a concise review: is the hypothesis supported, overstated, or untestable, and why?\n")
	return buf.String()
}
