package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"codex_backend/internal/feature/contentsync/domain/entity"
	"codex_backend/internal/feature/contentsync/usecase"
	"codex_backend/internal/platform/externalapi/github/dto"
	"codex_backend/internal/shared/ratelimiter"
)

// maxPostBytes は記事1件あたりの読み込み上限です。
const maxPostBytes = 1 << 20

// BlogSource はGitHubリポジトリ上の記事を取得するPostSource実装です。
type BlogSource struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// BlogSourceがPostSourceを実装していることをコンパイル時に検証します。
var _ usecase.PostSource = (*BlogSource)(nil)

// NewBlogSource は指定された設定、HTTPクライアント、レートリミッターでBlogSourceを生成します。
func NewBlogSource(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *BlogSource {
	return &BlogSource{cfg: cfg, client: client, limiter: limiter}
}

// ListPosts は記事ディレクトリ内のファイル一覧を返します。サブディレクトリは含みません。
func (s *BlogSource) ListPosts(ctx context.Context) ([]entity.RemoteFile, error) {
	q := url.Values{}
	q.Set("ref", s.cfg.Branch)
	u := fmt.Sprintf("%s/repos/%s/contents/%s?%s",
		strings.TrimRight(s.cfg.BaseURL, "/"), s.cfg.Repo, strings.Trim(s.cfg.ContentPath, "/"), q.Encode())

	body, err := s.get(ctx, u, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}

	var entries []dto.ContentEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode contents listing: %w", err)
	}
	files := make([]entity.RemoteFile, 0, len(entries))
	for _, e := range entries {
		if e.Type != "file" {
			continue
		}
		files = append(files, entity.RemoteFile{Name: e.Name, Path: e.Path, DownloadURL: e.DownloadURL})
	}
	return files, nil
}

// FetchPost は記事の生データを取得します。
func (s *BlogSource) FetchPost(ctx context.Context, file entity.RemoteFile) ([]byte, error) {
	if file.DownloadURL == "" {
		return nil, fmt.Errorf("github: %s has no download url", file.Name)
	}
	return s.get(ctx, file.DownloadURL, "")
}

func (s *BlogSource) get(ctx context.Context, u, accept string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if s.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxPostBytes))
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 400 {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("github http %d: %s", res.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("github http %d", res.StatusCode)
	}
	return body, nil
}
