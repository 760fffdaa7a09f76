// Package assistant is the client for the text-generation collaborator.
// It drafts day-by-day itineraries and budget tips for a destination by
// calling an OpenAI-compatible responses endpoint.
//
// The contract with the rest of the application is deliberately soft:
// Generate never returns an error. Misconfiguration, transport failures, and
// API errors all come back as a plain user-facing message, so a broken or
// absent assistant can never disturb itinerary state.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pkordes/tripfolio/internal/domain"
)

// Mode selects what kind of text to generate for a destination.
type Mode string

const (
	// ModeItinerary asks for a day-by-day itinerary.
	ModeItinerary Mode = "itinerary"
	// ModeBudgetTips asks for a budget-saving tips narrative.
	ModeBudgetTips Mode = "budget_tips"
)

// ParseMode maps a raw string onto a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.TrimSpace(strings.ToLower(s))) {
	case ModeItinerary:
		return ModeItinerary, true
	case ModeBudgetTips:
		return ModeBudgetTips, true
	}
	return "", false
}

// Client calls the responses endpoint of an OpenAI-compatible API.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// New constructs a Client. An empty apiKey yields an unconfigured client:
// it is still safe to call, and Generate explains what is missing.
func New(apiKey, baseURL, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Generate returns assistant text for the destination in the given mode.
// Any failure is converted into the returned message; it never panics and
// never returns an error value.
func (c *Client) Generate(ctx context.Context, d domain.Destination, mode Mode) string {
	if !c.Configured() {
		return "Travel assistant is not configured: set OPENAI_API_KEY to enable it."
	}

	text, err := c.complete(ctx, prompt(d, mode))
	if err != nil {
		return fmt.Sprintf("Travel assistant error: %v", err)
	}
	return text
}

// prompt builds the generation prompt for a destination and mode.
func prompt(d domain.Destination, mode Mode) string {
	if mode == ModeBudgetTips {
		return fmt.Sprintf(
			"Provide practical budget-saving tips for a trip to %s, %s between %s and %s "+
				"with total budget $%.2f. Include transport, food, accommodation tips and "+
				"which activities to prioritize.",
			d.City, d.Country, d.StartDate, d.EndDate, d.Budget)
	}
	return fmt.Sprintf(
		"Create a detailed day-by-day travel itinerary for %s, %s from %s to %s. "+
			"Budget: $%.2f. Activities: %s.\n"+
			"Provide for each day: morning, afternoon, evening suggestions and an "+
			"estimated cost breakdown.",
		d.City, d.Country, d.StartDate, d.EndDate, d.Budget, strings.Join(d.Activities, ", "))
}

type responsesRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// responsesReply covers both reply shapes the API produces: a flattened
// output_text, and the structured output list it is derived from.
type responsesReply struct {
	OutputText string `json:"output_text"`
	Output     []struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// httpStatusError carries a non-2xx response so the retry logic can decide
// whether the failure is transient.
type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// complete performs the API call, retrying transient failures (429, 5xx,
// network errors) with exponential backoff while respecting ctx.
func (c *Client) complete(ctx context.Context, input string) (string, error) {
	payload, err := json.Marshal(responsesRequest{Model: c.model, Input: input})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	var text string
	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		t, err := c.once(ctx, payload)
		if err != nil {
			if transient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		text = t
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// once performs a single request/response cycle.
func (c *Client) once(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/responses", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var reply responsesReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if reply.Error != nil {
		return "", fmt.Errorf("api error: %s", reply.Error.Message)
	}
	if reply.OutputText != "" {
		return reply.OutputText, nil
	}
	if len(reply.Output) > 0 && len(reply.Output[0].Content) > 0 {
		return reply.Output[0].Content[0].Text, nil
	}
	return "", fmt.Errorf("empty response")
}

// transient reports whether the error is worth retrying.
func transient(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	var ne net.Error
	return errors.As(err, &ne)
}
