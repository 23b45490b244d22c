// Package github はGitHub contents APIからブログ記事を取得するクライアントを提供します。
package github

import "time"

// Config はGitHub contents APIクライアントの設定です。
type Config struct {
	BaseURL     string        // APIのベースURL（例: "https://api.github.com"）
	Repo        string        // owner/name
	Branch      string        // 取得するブランチ
	ContentPath string        // 記事ディレクトリ
	Token       string        // 任意。指定するとレート上限が上がります
	Timeout     time.Duration // HTTPリクエストのタイムアウト
}
