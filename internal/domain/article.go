package domain

import (
	"fmt"
	"strings"
	"time"
)

// Validation errors for Article
var (
	ErrEmptyArticleTitle   = fmt.Errorf("%w: article title", ErrEmptyContent)
	ErrEmptyArticleContent = fmt.Errorf("%w: article content", ErrEmptyContent)
	ErrEmptyArticleTheme   = fmt.Errorf("%w: article theme", ErrEmptyContent)
)

// Article is a single generated post. Title is unique across all stored
// articles; Theme references the day's theme by value.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	Tags        []string  `json:"tags"`
	Theme       string    `json:"theme"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewArticle creates an Article from generated fields. Title and theme are
// trimmed and blank tags are dropped, keeping the original tag order.
func NewArticle(title, content string, tags []string, theme string) (*Article, error) {
	article := &Article{
		Title:   strings.TrimSpace(title),
		Content: content,
		Tags:    normalizeTags(tags),
		Theme:   strings.TrimSpace(theme),
	}

	if err := article.Validate(); err != nil {
		return nil, err
	}

	return article, nil
}

// Validate checks if the Article has valid data.
func (a *Article) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return ErrEmptyArticleTitle
	}

	if strings.TrimSpace(a.Content) == "" {
		return ErrEmptyArticleContent
	}

	if strings.TrimSpace(a.Theme) == "" {
		return ErrEmptyArticleTheme
	}

	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}
