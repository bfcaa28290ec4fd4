// Package client requests section content from the generation server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/abhisek/aptiz/internal/exam"
)

// DefaultBaseURL is where `aptiz serve` listens by default.
const DefaultBaseURL = "http://localhost:8080"

const (
	fallbackMessage = "Failed to generate test content from the server."
	unreadableBody  = "An unknown network error occurred"
)

// Client fetches content for one section at a time. Writing and speaking
// content is static and never touches the network.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 3 * time.Minute},
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURLFromEnv returns APTIZ_SERVER or DefaultBaseURL.
func BaseURLFromEnv() string {
	if u := os.Getenv("APTIZ_SERVER"); u != "" {
		return u
	}
	return DefaultBaseURL
}

type generateRequest struct {
	TestType string `json:"testType"`
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// RequestContent returns the content for tt. Remote sections cost exactly
// one POST /generate; there is no retry. Errors are one of
// *exam.InvalidTestTypeError, *exam.GenerationFailedError or
// *exam.SchemaViolationError.
func (c *Client) RequestContent(ctx context.Context, tt exam.TestType) (exam.Content, error) {
	if !tt.Valid() {
		return nil, &exam.InvalidTestTypeError{Value: tt.String()}
	}
	if content, ok := exam.StaticContent(tt); ok {
		return content, nil
	}

	payload, err := json.Marshal(generateRequest{TestType: tt.String()})
	if err != nil {
		return nil, &exam.GenerationFailedError{Detail: fallbackMessage, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, &exam.GenerationFailedError{Detail: fallbackMessage, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, &exam.GenerationFailedError{Detail: "Could not reach the generation server.", Err: err}
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	c.logger.Debug("generate response",
		zap.String("test_type", tt.Slug()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(tt, resp.StatusCode, body, readErr)
	}
	if readErr != nil {
		return nil, &exam.GenerationFailedError{Detail: unreadableBody, Err: readErr}
	}

	return exam.DecodeContent(tt, body)
}

func statusError(tt exam.TestType, status int, body []byte, readErr error) error {
	var eb errorBody
	if readErr != nil || json.Unmarshal(body, &eb) != nil {
		eb = errorBody{Error: unreadableBody}
	}

	if status == http.StatusBadRequest {
		return &exam.InvalidTestTypeError{Value: tt.String()}
	}

	msg := eb.Error
	if msg == "" {
		msg = fallbackMessage
	}
	return &exam.GenerationFailedError{
		Detail: msg,
		Err:    fmt.Errorf("server returned %d: %s", status, strings.TrimSpace(eb.Details)),
	}
}

// Compatible reports whether a server version can serve this client. Only
// the major version matters; development builds are always compatible.
func Compatible(clientVersion, serverVersion string) bool {
	if !semver.IsValid(clientVersion) || !semver.IsValid(serverVersion) {
		return true
	}
	return semver.Major(clientVersion) == semver.Major(serverVersion)
}

// CheckServer asks the server for its version. It returns the version and
// whether it is compatible with clientVersion. An unreachable server is an
// error; an incompatible one is not.
func (c *Client) CheckServer(ctx context.Context, clientVersion string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/version", nil)
	if err != nil {
		return "", false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("reach generation server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("version check: server returned %d", resp.StatusCode)
	}

	var v struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return "", false, fmt.Errorf("version check: %w", err)
	}
	return v.Version, Compatible(clientVersion, v.Version), nil
}
