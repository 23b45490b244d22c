// Package gemini はGoogle Gemini APIを使ったテキスト要約クライアントを提供します。
package gemini

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"codex_backend/internal/feature/contentsync/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// Config はSummarizerの設定です。
type Config struct {
	Model  string
	APIKey string
	// BaseURL とHTTPClient はテストでAPIの向き先を差し替えるときだけ指定します。
	BaseURL    string
	HTTPClient *http.Client
}

// Summarizer はGoogle Gemini APIを使用して記事の抜粋を生成します。
type Summarizer struct {
	client *genai.Client
	model  string
}

// SummarizerがSummarizerインターフェースを実装していることをコンパイル時に検証します。
var _ usecase.Summarizer = (*Summarizer)(nil)

// NewSummarizer はSummarizerの新しいインスタンスを生成します。
// APIKeyが空の場合はADCを使用し、環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewSummarizer(ctx context.Context, cfg Config) (*Summarizer, error) {
	var cc *genai.ClientConfig
	if cfg.APIKey != "" {
		cc = &genai.ClientConfig{
			APIKey:     cfg.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: cfg.HTTPClient,
			HTTPOptions: genai.HTTPOptions{
				BaseURL: cfg.BaseURL,
			},
		}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{client: client, model: model}, nil
}

// Summarize はプロンプトから要約を生成します。
func (g *Summarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}
