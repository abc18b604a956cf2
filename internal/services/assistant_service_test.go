package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type generateContentBody struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

func TestGeminiAssistantComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "models/test-model:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "k" {
			t.Errorf("missing api key header")
		}
		var req generateContentBody
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 || req.Contents[0].Parts[0].Text != "Sugira um anúncio" {
			t.Errorf("unexpected request %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Promoção "},{"text":"de verão"}]}}]}`))
	}))
	defer srv.Close()

	g := NewGeminiAssistant(srv.Client(), GeminiConfig{APIKey: "k", Model: "test-model", BaseURL: srv.URL})
	got, err := g.Complete(context.Background(), "Sugira um anúncio")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != "Promoção de verão" {
		t.Fatalf("unexpected answer %q", got)
	}
}

func TestGeminiAssistantErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, "empty") {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
			return
		}
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"bad key","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		cfg     GeminiConfig
		prompt  string
		message string
	}{
		{"missing key", GeminiConfig{BaseURL: srv.URL}, "oi", msgAssistantNoKey},
		{"blank prompt", GeminiConfig{APIKey: "k", BaseURL: srv.URL}, "   ", msgAssistantNoPrompt},
		{"upstream failure", GeminiConfig{APIKey: "k", BaseURL: srv.URL}, "oi", msgAssistantFailure},
		{"empty answer", GeminiConfig{APIKey: "k", Model: "empty", BaseURL: srv.URL}, "oi", msgAssistantEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeminiAssistant(srv.Client(), tt.cfg).Complete(context.Background(), tt.prompt)
			var aerr *AssistantError
			if !errors.As(err, &aerr) {
				t.Fatalf("expected *AssistantError, got %v", err)
			}
			if aerr.Message != tt.message {
				t.Fatalf("message = %q, want %q", aerr.Message, tt.message)
			}
		})
	}
}
