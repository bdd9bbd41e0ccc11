package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	TitleMaxLength        = 256
	CommentMaxLength      = 10000
	SlugMaxLength         = 64
	LocationNameMaxLength = 256
)

var slugRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateTitle checks a post or category title.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(title) > TitleMaxLength {
		return fmt.Errorf("title must not exceed %d characters", TitleMaxLength)
	}
	return nil
}

// ValidatePostText requires non-blank post text.
func ValidatePostText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("text is required")
	}
	return nil
}

// NormalizeComment trims the comment and checks it is present and bounded.
func NormalizeComment(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", errors.New("comment text is required")
	}
	if utf8.RuneCountInString(trimmed) > CommentMaxLength {
		return "", fmt.Errorf("comment must not exceed %d characters", CommentMaxLength)
	}
	return trimmed, nil
}

// ValidateSlug checks a category slug: latin letters, digits, hyphen and underscore.
func ValidateSlug(slug string) error {
	if slug == "" {
		return errors.New("slug is required")
	}
	if len(slug) > SlugMaxLength {
		return fmt.Errorf("slug must not exceed %d characters", SlugMaxLength)
	}
	if !slugRegex.MatchString(slug) {
		return errors.New("slug can only contain latin letters, digits, hyphens and underscores")
	}
	return nil
}

// ValidateLocationName checks a location name.
func ValidateLocationName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	if utf8.RuneCountInString(name) > LocationNameMaxLength {
		return fmt.Errorf("name must not exceed %d characters", LocationNameMaxLength)
	}
	return nil
}
