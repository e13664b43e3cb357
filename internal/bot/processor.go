package bot

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/neelspatel02/BeautifyBot/internal/core/domain"
	"github.com/neelspatel02/BeautifyBot/internal/core/ports"
)

// titleMaxLen caps the stored post title, in characters; longer titles get
// an ellipsis.
const titleMaxLen = 80

// Processor runs one trigger event through dedup check, validation, the AI
// call, the reply, and persistence. The durable record is written only after
// the success reply is confirmed, so the store never points at a reply that
// was not posted, and a failed run stays eligible for a later retrigger.
type Processor struct {
	site      ports.Site
	store     ports.Storage
	brain     ports.Brain
	responder *Responder

	minPostLength int
	maxPostLength int
	log           zerolog.Logger
}

func NewProcessor(site ports.Site, store ports.Storage, brain ports.Brain, responder *Responder, minLen, maxLen int, log zerolog.Logger) *Processor {
	return &Processor{
		site:          site,
		store:         store,
		brain:         brain,
		responder:     responder,
		minPostLength: minLen,
		maxPostLength: maxLen,
		log:           log.With().Str("component", "processor").Logger(),
	}
}

// Process returns the terminal branch the trigger ended in. Every failure
// path attempts the generic-error reply and writes nothing.
func (p *Processor) Process(ctx context.Context, comment domain.Comment) domain.Result {
	postID := comment.PostID
	log := p.log.With().Str("post_id", postID).Str("comment_id", comment.ID).Logger()

	existing, found, err := p.store.Lookup(ctx, postID)
	if err != nil {
		log.Error().Err(err).Msg("dedup lookup failed")
		return p.fail(ctx, comment, err)
	}
	if found {
		if err := p.responder.SendDuplicate(ctx, comment, existing); err != nil {
			log.Error().Err(err).Msg("duplicate notice failed")
			return domain.Result{Outcome: domain.OutcomeFailed, PostID: postID, Err: err}
		}
		return domain.Result{Outcome: domain.OutcomeDuplicate, PostID: postID, ReplyPermalink: existing}
	}

	post, err := p.site.GetPost(ctx, postID)
	if err != nil {
		log.Error().Err(err).Msg("parent post fetch failed")
		return p.fail(ctx, comment, err)
	}
	log.Info().Str("title", truncateTitle(post.Title)).Msg("processing post")

	if ok, reason := Validate(post, p.minPostLength, p.maxPostLength); !ok {
		if err := p.responder.SendValidationError(ctx, comment, reason, TrimmedLength(post), p.minPostLength, p.maxPostLength); err != nil {
			log.Error().Err(err).Msg("validation error reply failed")
			return domain.Result{Outcome: domain.OutcomeFailed, PostID: postID, Err: err}
		}
		return domain.Result{Outcome: domain.OutcomeInvalid, PostID: postID, Reason: reason}
	}

	improved, err := p.brain.Beautify(ctx, post.Body)
	if err != nil {
		log.Error().Err(err).Msg("beautify call failed")
		return p.fail(ctx, comment, err)
	}

	permalink, err := p.responder.SendBeautified(ctx, comment, improved)
	if err != nil {
		log.Error().Err(err).Msg("beautified reply failed")
		return p.fail(ctx, comment, err)
	}

	rec := domain.ProcessedPost{
		PostID:         postID,
		Title:          truncateTitle(post.Title),
		Author:         authorOrDeleted(post.Author),
		ReplyPermalink: permalink,
		Status:         domain.StatusBeautified,
	}
	if err := p.store.Upsert(ctx, rec); err != nil {
		log.Error().Err(err).Msg("persistence failed")
		return p.fail(ctx, comment, err)
	}

	log.Info().Str("permalink", permalink).Msg("post beautified")
	return domain.Result{Outcome: domain.OutcomeBeautified, PostID: postID, ReplyPermalink: permalink}
}

// fail sends the generic-error reply on a best-effort basis; the original
// failure is what the result reports.
func (p *Processor) fail(ctx context.Context, comment domain.Comment, cause error) domain.Result {
	if err := p.responder.SendGenericError(ctx, comment); err != nil {
		p.log.Error().Err(err).Str("comment_id", comment.ID).Msg("generic error reply failed")
	}
	return domain.Result{Outcome: domain.OutcomeFailed, PostID: comment.PostID, Err: cause}
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) > titleMaxLen {
		return string(runes[:titleMaxLen]) + "..."
	}
	return title
}

func authorOrDeleted(author string) string {
	if author == "" || author == domain.DeletedAuthor {
		return domain.DeletedAuthor
	}
	return author
}
