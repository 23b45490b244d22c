// Package dto はcontentsyncフィーチャーのレスポンス型を定義します。
package dto

import "codex_backend/internal/feature/contentsync/domain/entity"

// SyncResponse は POST /admin/sync-blog のレスポンスです。
type SyncResponse struct {
	Message    string   `json:"message"`
	Synced     int      `json:"synced"`
	Updated    int      `json:"updated"`
	TotalFiles int      `json:"total_files"`
	Errors     []string `json:"errors"`
}

func NewSyncResponse(r *entity.SyncReport) SyncResponse {
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}
	return SyncResponse{
		Message:    "Blog sync completed",
		Synced:     r.Synced,
		Updated:    r.Updated,
		TotalFiles: r.TotalFiles,
		Errors:     errs,
	}
}
