package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"codex_backend/internal/feature/contentsync/domain/entity"
)

// PostExtension は同期対象の拡張子です。
const PostExtension = ".mdx"

// DefaultCategory はマッピングにないカテゴリの変換先です。
const DefaultCategory = "Geek Science"

var categoryMap = map[string]string{
	"science":    "Geek Science",
	"psychology": "Dark Psychology",
	"conspiracy": "Conspiracy Vault",
	"ai":         "AI Unleashed",
	"technology": "AI Unleashed",
}

// MapCategory はブログのカテゴリをインサイトのカテゴリに変換します。
func MapCategory(blogCategory string) string {
	if c, ok := categoryMap[strings.ToLower(strings.TrimSpace(blogCategory))]; ok {
		return c
	}
	return DefaultCategory
}

// tagList はリストとカンマ区切り文字列の両方を受け付けます。
type tagList []string

func (t *tagList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		out := []string{}
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		*t = out
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*t = list
		return nil
	default:
		return fmt.Errorf("tags: unsupported yaml kind %d", node.Kind)
	}
}

type frontMatterYAML struct {
	Title    string  `yaml:"title"`
	Category string  `yaml:"category"`
	Tags     tagList `yaml:"tags"`
	Excerpt  string  `yaml:"excerpt"`
	Featured bool    `yaml:"featured"`
}

// ParsePost はファイル名と内容から記事を組み立てます。
// カテゴリ未指定はscienceとして扱います。
func ParsePost(name string, raw []byte) (*entity.Post, error) {
	content := string(raw)
	if !strings.HasPrefix(content, "---") {
		return nil, ErrNoFrontMatter
	}
	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return nil, ErrInvalidFrontMatter
	}

	var fm frontMatterYAML
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}
	if fm.Category == "" {
		fm.Category = "science"
	}
	tags := []string(fm.Tags)
	if tags == nil {
		tags = []string{}
	}

	return &entity.Post{
		Slug: strings.TrimSuffix(name, PostExtension),
		FrontMatter: entity.FrontMatter{
			Title:    strings.TrimSpace(fm.Title),
			Category: fm.Category,
			Tags:     tags,
			Excerpt:  strings.TrimSpace(fm.Excerpt),
			Featured: fm.Featured,
		},
		Body: strings.TrimSpace(parts[2]),
	}, nil
}

var (
	sentenceEnd   = regexp.MustCompile(`[.!?]\s+`)
	markdownChars = regexp.MustCompile(`\*\*|\*|#|\[|\]|\(|\)`)
)

// minSentenceLen 以下の文は見出しや断片とみなして抜粋に含めません。
const minSentenceLen = 20

// ExtractExcerpt は本文の先頭maxSentences文からマークダウン記号を除いた抜粋を作ります。
func ExtractExcerpt(body string, maxSentences int) string {
	var sentences []string
	rest := body
	for len(sentences) < maxSentences {
		loc := sentenceEnd.FindStringIndex(rest)
		if loc == nil {
			sentences = append(sentences, rest)
			break
		}
		// 区切りの句読点は文に含める
		sentences = append(sentences, rest[:loc[0]+1])
		rest = rest[loc[1]:]
	}

	out := make([]string, 0, maxSentences)
	for _, s := range sentences {
		clean := strings.TrimSpace(markdownChars.ReplaceAllString(s, ""))
		if len(clean) > minSentenceLen {
			out = append(out, clean)
		}
		if len(out) >= maxSentences {
			break
		}
	}
	return strings.Join(out, " ")
}
