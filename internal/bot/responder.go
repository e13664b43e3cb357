package bot

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/neelspatel02/BeautifyBot/internal/core/domain"
	"github.com/neelspatel02/BeautifyBot/internal/core/ports"
)

// Responder renders the reply templates and posts them under the triggering
// comment. Send failures propagate to the processor; nothing is retried.
type Responder struct {
	site ports.Site
	log  zerolog.Logger
}

func NewResponder(site ports.Site, log zerolog.Logger) *Responder {
	return &Responder{site: site, log: log.With().Str("component", "responder").Logger()}
}

// SendBeautified posts the success reply and returns the permalink of the
// created reply, or "" when the platform does not supply one.
func (r *Responder) SendBeautified(ctx context.Context, comment domain.Comment, improvedText string) (string, error) {
	permalink, err := r.site.ReplyToComment(ctx, comment.ID, BeautifiedMessage(improvedText))
	if err != nil {
		return "", err
	}
	r.log.Info().Str("comment_id", comment.ID).Msg("sent beautified reply")
	return permalink, nil
}

func (r *Responder) SendDuplicate(ctx context.Context, comment domain.Comment, existingPermalink string) error {
	if _, err := r.site.ReplyToComment(ctx, comment.ID, DuplicateMessage(existingPermalink)); err != nil {
		return err
	}
	r.log.Info().Str("comment_id", comment.ID).Msg("sent duplicate notice")
	return nil
}

func (r *Responder) SendValidationError(ctx context.Context, comment domain.Comment, reason domain.ValidationReason, length, minLength, maxLength int) error {
	msg := ValidationErrorMessage(reason, length, minLength, maxLength)
	if _, err := r.site.ReplyToComment(ctx, comment.ID, msg); err != nil {
		return err
	}
	r.log.Info().Str("comment_id", comment.ID).Str("reason", string(reason)).Msg("sent validation error")
	return nil
}

func (r *Responder) SendGenericError(ctx context.Context, comment domain.Comment) error {
	if _, err := r.site.ReplyToComment(ctx, comment.ID, GenericErrorMessage()); err != nil {
		return err
	}
	r.log.Info().Str("comment_id", comment.ID).Msg("sent generic error")
	return nil
}
