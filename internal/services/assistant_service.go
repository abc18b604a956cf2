package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"salon_backend/pkg/utils"

	"google.golang.org/genai"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel   = "gemini-3-flash-preview"
)

// User-facing assistant failure messages.
const (
	msgAssistantNoKey    = "Chave de API do assistente não configurada."
	msgAssistantFailure  = "Falha ao comunicar com o assistente de IA. Tente novamente mais tarde."
	msgAssistantEmpty    = "O assistente não retornou nenhuma resposta."
	msgAssistantNoPrompt = "Escreva uma pergunta para o assistente."
)

var ErrAssistantUnavailable = errors.New("assistant not configured")

// AssistantError carries a message that can be shown to the user as is.
type AssistantError struct {
	Message string
	Err     error
}

func (e *AssistantError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AssistantError) Unwrap() error { return e.Err }

// Completer produces a text answer for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiConfig configures GeminiAssistant.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiAssistant answers prompts through the Gemini API. Requests are not
// retried.
type GeminiAssistant struct {
	httpClient *http.Client
	cfg        GeminiConfig
}

// NewGeminiAssistant creates a Completer backed by Gemini. A nil httpClient
// gets a client with a 30s timeout.
func NewGeminiAssistant(httpClient *http.Client, cfg GeminiConfig) *GeminiAssistant {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + "/"
	return &GeminiAssistant{httpClient: httpClient, cfg: cfg}
}

func (g *GeminiAssistant) client(ctx context.Context) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  g.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.cfg.BaseURL},
	})
}

// Complete sends prompt as a single user turn and returns the text of the
// first candidate.
func (g *GeminiAssistant) Complete(ctx context.Context, prompt string) (string, error) {
	if g.cfg.APIKey == "" {
		return "", &AssistantError{Message: msgAssistantNoKey, Err: ErrAssistantUnavailable}
	}
	if utils.IsEmpty(prompt) {
		return "", &AssistantError{Message: msgAssistantNoPrompt, Err: ErrValidation}
	}

	client, err := g.client(ctx)
	if err != nil {
		utils.LogError(err, "assistant: creating client failed")
		return "", &AssistantError{Message: msgAssistantFailure, Err: err}
	}

	resp, err := client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), nil)
	if err != nil {
		utils.LogError(err, "assistant: request failed", geminiErrorFields(err))
		return "", &AssistantError{Message: msgAssistantFailure, Err: err}
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &AssistantError{Message: msgAssistantEmpty}
	}
	return text, nil
}

// geminiErrorFields extracts the upstream status from an API error.
func geminiErrorFields(err error) map[string]interface{} {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return map[string]interface{}{"status_code": apiErr.Code, "status": apiErr.Status}
	}
	return nil
}
