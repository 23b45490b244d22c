// Package usecase はブログ記事をインサイトとして取り込むビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"codex_backend/internal/feature/contentsync/domain/entity"
	insightentity "codex_backend/internal/feature/insights/domain/entity"
	insightusecase "codex_backend/internal/feature/insights/usecase"
)

// excerptSentences は本文から抜粋を作るときの文数です。
const excerptSentences = 2

// SummaryPrompt は要約器に渡すプロンプトです。
const SummaryPrompt = "Summarize the following blog post in two punchy sentences for a curiosity feed. Plain text only, no markdown.\n\n%s"

// PostSource は記事の取得元を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PostSource interface {
	ListPosts(ctx context.Context) ([]entity.RemoteFile, error)
	FetchPost(ctx context.Context, file entity.RemoteFile) ([]byte, error)
}

// Summarizer は本文から抜粋を生成します。
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// InsightStore は取り込み先のインサイト永続化層です。
type InsightStore interface {
	// FindExisting はタイトルまたはソースURLが一致するインサイトを返します。
	// 見つからない場合はinsightsのErrInsightNotFoundを返します。
	FindExisting(ctx context.Context, title, sourceURL string) (*insightentity.Insight, error)
	Create(ctx context.Context, in *insightentity.Insight) error
	Update(ctx context.Context, id string, patch insightentity.InsightPatch) error
}

// ContentSyncUsecase はブログ記事の同期を行います。
type ContentSyncUsecase struct {
	source      PostSource
	store       InsightStore
	summarizer  Summarizer // nilなら本文の先頭から抜粋します
	blogBaseURL string
	now         func() time.Time
}

// NewContentSyncUsecase はContentSyncUsecaseを生成します。summarizerはnilでも構いません。
func NewContentSyncUsecase(source PostSource, store InsightStore, summarizer Summarizer, blogBaseURL string) *ContentSyncUsecase {
	return &ContentSyncUsecase{
		source:      source,
		store:       store,
		summarizer:  summarizer,
		blogBaseURL: strings.TrimRight(blogBaseURL, "/"),
		now:         time.Now,
	}
}

// Sync はすべての記事を取得し、インサイトを作成または更新します。
// 記事単位の失敗はレポートのErrorsに記録して処理を続けます。
func (u *ContentSyncUsecase) Sync(ctx context.Context, adminID string) (*entity.SyncReport, error) {
	files, err := u.source.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	report := &entity.SyncReport{Errors: []string{}}
	for _, f := range files {
		if !strings.HasSuffix(f.Name, PostExtension) {
			continue
		}
		report.TotalFiles++

		created, err := u.syncOne(ctx, adminID, f)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Error("failed to sync post", "file", f.Name, "error", err)
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", f.Name, err))
			continue
		}
		if created {
			report.Synced++
		} else {
			report.Updated++
		}
	}
	slog.Info("blog sync completed", "synced", report.Synced, "updated", report.Updated, "total_files", report.TotalFiles, "errors", len(report.Errors))
	return report, nil
}

// syncOne は1記事を取り込み、新規作成ならtrueを返します。
func (u *ContentSyncUsecase) syncOne(ctx context.Context, adminID string, f entity.RemoteFile) (bool, error) {
	raw, err := u.source.FetchPost(ctx, f)
	if err != nil {
		return false, fmt.Errorf("failed to fetch content: %w", err)
	}
	post, err := ParsePost(f.Name, raw)
	if err != nil {
		return false, err
	}

	fm := post.FrontMatter
	category := MapCategory(fm.Category)
	excerpt := u.excerpt(ctx, post)
	sourceURL := u.blogBaseURL + "/posts/" + post.Slug

	existing, err := u.store.FindExisting(ctx, fm.Title, sourceURL)
	switch {
	case err == nil:
		patch := insightentity.InsightPatch{
			Title:       &fm.Title,
			Category:    &category,
			Tags:        &fm.Tags,
			MainText:    &excerpt,
			SourceURL:   &sourceURL,
			PremiumOnly: &fm.Featured,
		}
		if err := u.store.Update(ctx, existing.ID, patch); err != nil {
			return false, fmt.Errorf("update insight %s: %w", existing.ID, err)
		}
		return false, nil
	case errors.Is(err, insightusecase.ErrInsightNotFound):
		in := &insightentity.Insight{
			ID:          uuid.NewString(),
			Title:       fm.Title,
			Category:    category,
			Tags:        fm.Tags,
			MainText:    excerpt,
			SourceURL:   &sourceURL,
			PremiumOnly: fm.Featured,
			CreatedBy:   adminID,
			CreatedAt:   u.now().UTC(),
		}
		if err := u.store.Create(ctx, in); err != nil {
			return false, fmt.Errorf("create insight: %w", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("lookup insight: %w", err)
	}
}

// excerpt はフロントマターの抜粋、要約器の出力、本文の先頭の順に採用します。
func (u *ContentSyncUsecase) excerpt(ctx context.Context, post *entity.Post) string {
	if post.FrontMatter.Excerpt != "" {
		return post.FrontMatter.Excerpt
	}
	if u.summarizer != nil && post.Body != "" {
		summary, err := u.summarizer.Summarize(ctx, fmt.Sprintf(SummaryPrompt, post.Body))
		if err == nil && strings.TrimSpace(summary) != "" {
			return strings.TrimSpace(summary)
		}
		if err != nil {
			slog.Warn("summarizer failed, falling back to leading sentences", "slug", post.Slug, "error", err)
		}
	}
	return ExtractExcerpt(post.Body, excerptSentences)
}
