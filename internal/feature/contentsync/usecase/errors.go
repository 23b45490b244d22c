package usecase

import "errors"

var (
	// ErrNoFrontMatter は記事が "---" で始まらない場合に返されます。
	ErrNoFrontMatter = errors.New("no frontmatter found")
	// ErrInvalidFrontMatter は閉じ区切りがない、またはYAMLとして解析できない場合に返されます。
	ErrInvalidFrontMatter = errors.New("invalid frontmatter format")
	// ErrSourceUnavailable は記事一覧を取得できなかった場合に返されます。
	ErrSourceUnavailable = errors.New("content source unavailable")
)
