package services

import (
	"strings"
	"unicode/utf8"

	"task-tracker.com/task-tracker/pkg/exceptions"
	model "task-tracker.com/task-tracker/pkg/models"
)

func normalizeTitle(raw *string, whenEmpty *exceptions.Exception) (string, error) {
	title := trimmed(raw)
	if title == "" {
		return "", whenEmpty
	}
	if utf8.RuneCountInString(title) > model.MaxTitleLength {
		return "", exceptions.ErrTitleTooLong
	}
	return title, nil
}

func normalizeContent(raw *string, whenEmpty *exceptions.Exception) (string, error) {
	content := trimmed(raw)
	if content == "" {
		return "", whenEmpty
	}
	if utf8.RuneCountInString(content) > model.MaxContentLength {
		return "", exceptions.ErrContentTooLong
	}
	return content, nil
}

// normalizeAuthor maps a missing or blank author to nil.
func normalizeAuthor(raw *string) (*string, error) {
	author := trimmed(raw)
	if author == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(author) > model.MaxAuthorLength {
		return nil, exceptions.ErrAuthorTooLong
	}
	return &author, nil
}

func trimmed(raw *string) string {
	if raw == nil {
		return ""
	}
	return strings.TrimSpace(*raw)
}
