package bot

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/neelspatel02/BeautifyBot/internal/core/domain"
)

// Reply templates. The wording is part of the bot's public behavior; keep
// changes deliberate.

const beautifiedTemplate = `Beautified !!

---

%s

---

Improved by BeautifyBot
*I'm a bot that improves post readability!* `

const duplicateTemplate = `I've already beautified this post!

---

**[Here's my previous response](%s)**

---
*I am a bot that improves post readability!*
`

const validationErrorTemplate = `Sorry, I couldn't process your post: %s

Requirements:
- Must be a text post
- Length between %d - %d characters`

const genericErrorMessage = `Sorry! I encountered an error while processing your post.
Please try again in a few minutes.`

// BeautifiedMessage embeds the improved text in the success template.
func BeautifiedMessage(improvedText string) string {
	return fmt.Sprintf(beautifiedTemplate, improvedText)
}

// DuplicateMessage links to the reply posted on a previous trigger.
func DuplicateMessage(existingPermalink string) string {
	return fmt.Sprintf(duplicateTemplate, existingPermalink)
}

// boundsPrinter renders the length bounds with thousands separators
// ("1,000 - 15,000").
var boundsPrinter = message.NewPrinter(language.English)

// ValidationErrorMessage names the rejection reason and restates the bounds.
func ValidationErrorMessage(reason domain.ValidationReason, length, minLength, maxLength int) string {
	return boundsPrinter.Sprintf(validationErrorTemplate, ReasonText(reason, length), minLength, maxLength)
}

// GenericErrorMessage is the catch-all failure reply.
func GenericErrorMessage() string {
	return genericErrorMessage
}

// ReasonText renders a rejection reason for the user.
func ReasonText(reason domain.ValidationReason, length int) string {
	switch reason {
	case domain.ReasonNotText:
		return "Not a text post"
	case domain.ReasonTooShort:
		return fmt.Sprintf("Too short (%d chars)", length)
	case domain.ReasonTooLong:
		return fmt.Sprintf("Too long (%d chars)", length)
	default:
		return string(reason)
	}
}
