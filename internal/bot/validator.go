package bot

import (
	"strings"
	"unicode/utf8"

	"github.com/neelspatel02/BeautifyBot/internal/core/domain"
)

// Validate decides whether a post is eligible for beautifying. Rules apply
// in order: a post without a body is not a text post, then the trimmed
// length is checked against the configured bounds (both inclusive).
// Length is counted in characters, not bytes.
func Validate(post domain.Post, minLength, maxLength int) (bool, domain.ValidationReason) {
	if post.Body == "" {
		return false, domain.ReasonNotText
	}

	length := utf8.RuneCountInString(strings.TrimSpace(post.Body))
	if length < minLength {
		return false, domain.ReasonTooShort
	}
	if length > maxLength {
		return false, domain.ReasonTooLong
	}
	return true, domain.ReasonValid
}

// TrimmedLength is the character count the validator judged, used in the
// rejection message.
func TrimmedLength(post domain.Post) int {
	return utf8.RuneCountInString(strings.TrimSpace(post.Body))
}
