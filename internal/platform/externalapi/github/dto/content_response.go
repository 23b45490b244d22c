// Package dto はGitHub contents APIのレスポンス型を定義します。
package dto

// ContentEntry は GET /repos/{owner}/{repo}/contents/{path} の要素です。
type ContentEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// ErrorResponse はGitHub APIのエラーボディです。
type ErrorResponse struct {
	Message string `json:"message"`
}
