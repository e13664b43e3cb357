package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neelspatel02/BeautifyBot/internal/core/domain"
)

func TestBeautifiedMessage(t *testing.T) {
	msg := BeautifiedMessage("Improved text here.")
	assert.Contains(t, msg, "Beautified !!")
	assert.Contains(t, msg, "Improved text here.")
	assert.Contains(t, msg, "Improved by BeautifyBot")
}

func TestDuplicateMessage(t *testing.T) {
	msg := DuplicateMessage("https://reddit.com/r/test/comments/abc/x/def")
	assert.Contains(t, msg, "already beautified")
	assert.Contains(t, msg, "https://reddit.com/r/test/comments/abc/x/def")
}

func TestValidationErrorMessage(t *testing.T) {
	msg := ValidationErrorMessage(domain.ReasonTooShort, 500, 1000, 15000)
	assert.Contains(t, msg, "Too short (500 chars)")
	assert.Contains(t, msg, "1,000 - 15,000", "bounds carry thousands separators")

	msg = ValidationErrorMessage(domain.ReasonNotText, 0, 1000, 15000)
	assert.Contains(t, msg, "Not a text post")
}

func TestReasonText(t *testing.T) {
	assert.Equal(t, "Not a text post", ReasonText(domain.ReasonNotText, 0))
	assert.Equal(t, "Too short (42 chars)", ReasonText(domain.ReasonTooShort, 42))
	assert.Equal(t, "Too long (20000 chars)", ReasonText(domain.ReasonTooLong, 20000))
}
