package ports

import (
	"context"

	"github.com/neelspatel02/BeautifyBot/internal/core/domain"
)

// Site is the social platform adapter. StreamComments blocks on the live
// comment stream and invokes handler for each new comment; it returns when
// the subscription breaks (the caller resubscribes) or ctx is cancelled.
type Site interface {
	Name() string
	BotUsername() string
	Initialize(ctx context.Context) error
	GetPost(ctx context.Context, postID string) (domain.Post, error)
	ReplyToComment(ctx context.Context, commentID, body string) (permalink string, err error)
	StreamComments(ctx context.Context, handler func(domain.Comment)) error
}

// Brain is the text-generation capability that reformats a raw post body.
type Brain interface {
	Beautify(ctx context.Context, text string) (string, error)
}

// Storage is the idempotency store. Lookup reports the stored reply
// permalink and whether a record exists; Upsert replaces any record with the
// same post id and is durable before returning.
type Storage interface {
	Lookup(ctx context.Context, postID string) (permalink string, found bool, err error)
	Upsert(ctx context.Context, rec domain.ProcessedPost) error
	Close() error
}

// Notifier pushes a short message to the bot operator. Optional; a nil
// Notifier means notifications are disabled.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}
