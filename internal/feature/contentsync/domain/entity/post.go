// Package entity はcontentsyncフィーチャーのドメインエンティティを定義します。
package entity

// RemoteFile はブログリポジトリ上の記事ファイルです。
type RemoteFile struct {
	Name        string
	Path        string
	DownloadURL string
}

// FrontMatter は記事先頭のYAMLメタデータです。
type FrontMatter struct {
	Title    string
	Category string
	Tags     []string
	Excerpt  string
	Featured bool
}

// Post はフロントマターと本文に分割された記事です。
type Post struct {
	Slug        string
	FrontMatter FrontMatter
	Body        string
}

// SyncReport は1回の同期の結果です。
type SyncReport struct {
	Synced     int
	Updated    int
	TotalFiles int
	Errors     []string
}
