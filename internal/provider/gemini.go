package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nayeemhs/uniassist/internal/domain"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient is a minimal Gemini generateContent client.
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewGeminiClient creates a Gemini client for the given model.
func NewGeminiClient(apiKey, model string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: defaultGeminiBaseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *GeminiClient) SetBaseURL(url string) {
	c.baseURL = strings.TrimRight(url, "/")
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the system prompt and conversation turns to the Gemini API
// and returns the completion text. Failures are returned as *Error.
func (c *GeminiClient) Generate(ctx context.Context, systemPrompt string, turns []domain.Turn) (string, error) {
	reqBody := generateRequest{
		Contents: make([]geminiContent, 0, len(turns)),
	}
	if systemPrompt != "" {
		reqBody.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		}
	}
	for _, turn := range turns {
		if turn.Role == domain.RoleSystem {
			// System text travels in system_instruction, not in contents.
			continue
		}
		reqBody.Contents = append(reqBody.Contents, geminiContent{
			Role:  geminiRole(turn.Role),
			Parts: []geminiPart{{Text: turn.Content}},
		})
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Message: err.Error()}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Debug("failed to close gemini response body", "error", closeErr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("read response body: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", newAPIError(resp.StatusCode, body)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &Error{StatusCode: resp.StatusCode, Message: "unparseable response body"}
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &Error{StatusCode: resp.StatusCode, Message: "empty model response"}
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", &Error{StatusCode: resp.StatusCode, Message: "empty model response"}
	}
	return text, nil
}

// newAPIError converts a non-2xx Gemini response into a typed Error,
// preserving the structured code and status when the body parses.
func newAPIError(statusCode int, body []byte) *Error {
	var parsed geminiErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return &Error{
			StatusCode: statusCode,
			Status:     parsed.Error.Status,
			Message:    parsed.Error.Message,
		}
	}
	return &Error{
		StatusCode: statusCode,
		Message:    truncate(string(body), 400),
	}
}

// geminiRole maps canonical roles to the Gemini wire roles.
func geminiRole(role string) string {
	if domain.NormalizeRole(role) == domain.RoleAssistant {
		return "model"
	}
	return "user"
}

// Ensure GeminiClient implements Generator.
var _ Generator = (*GeminiClient)(nil)
