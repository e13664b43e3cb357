package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/neelspatel02/BeautifyBot/internal/core/domain"
	"github.com/neelspatel02/BeautifyBot/internal/core/ports"
)

// Supervisor owns the outer loop: it keeps a live comment subscription,
// filters for trigger comments, and hands matches to the processor. A broken
// subscription is logged and reopened after the reconnect delay; only
// context cancellation ends the loop.
type Supervisor struct {
	site      ports.Site
	processor *Processor
	notifier  ports.Notifier

	trigger        string
	commentDelay   time.Duration
	reconnectDelay time.Duration
	log            zerolog.Logger
}

func NewSupervisor(site ports.Site, processor *Processor, notifier ports.Notifier, trigger string, commentDelay, reconnectDelay time.Duration, log zerolog.Logger) *Supervisor {
	return &Supervisor{
		site:           site,
		processor:      processor,
		notifier:       notifier,
		trigger:        strings.ToLower(trigger),
		commentDelay:   commentDelay,
		reconnectDelay: reconnectDelay,
		log:            log.With().Str("component", "supervisor").Logger(),
	}
}

// Run blocks until ctx is cancelled.
func (s *Supervisor) Run(ctx context.Context) error {
	s.log.Info().Str("site", s.site.Name()).Str("trigger", s.trigger).Msg("monitoring comments")

	for {
		err := s.site.StreamComments(ctx, func(c domain.Comment) {
			s.handleComment(ctx, c)
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.log.Error().Err(err).Dur("reconnect_delay", s.reconnectDelay).Msg("comment stream error, reconnecting")
		s.notify(ctx, "Stream error", fmt.Sprintf("Comment stream broke: %v. Reconnecting.", err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.reconnectDelay):
		}
	}
}

// handleComment applies the trigger filter and processes a match. Errors are
// contained here; one bad comment never stops the stream.
func (s *Supervisor) handleComment(ctx context.Context, c domain.Comment) {
	if !s.isTrigger(c) {
		return
	}
	s.log.Info().Str("comment_id", c.ID).Str("author", c.Author).Msg("trigger found")

	res := s.processor.Process(ctx, c)
	switch res.Outcome {
	case domain.OutcomeBeautified:
		s.notify(ctx, "Post beautified", fmt.Sprintf("Post %s beautified.\n%s", res.PostID, res.ReplyPermalink))
	case domain.OutcomeDuplicate:
		s.log.Info().Str("post_id", res.PostID).Msg("already processed")
	case domain.OutcomeInvalid:
		s.log.Info().Str("post_id", res.PostID).Str("reason", string(res.Reason)).Msg("post rejected")
	case domain.OutcomeFailed:
		s.log.Error().Err(res.Err).Str("post_id", res.PostID).Msg("processing failed")
		s.notify(ctx, "Processing failed", fmt.Sprintf("Post %s failed: %v", res.PostID, res.Err))
	}

	// Bound the outbound request rate.
	select {
	case <-ctx.Done():
	case <-time.After(s.commentDelay):
	}
}

// isTrigger decides whether a comment activates the bot. Comments from
// deleted accounts and from the bot itself are ignored.
func (s *Supervisor) isTrigger(c domain.Comment) bool {
	if c.Author == "" || c.Author == domain.DeletedAuthor {
		return false
	}
	if strings.EqualFold(c.Author, s.site.BotUsername()) {
		return false
	}
	return strings.Contains(strings.ToLower(c.Body), s.trigger)
}

func (s *Supervisor) notify(ctx context.Context, title, body string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, title, body); err != nil {
		s.log.Warn().Err(err).Msg("owner notification failed")
	}
}
