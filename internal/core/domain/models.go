package domain

import "time"

// Post is a text post on the platform, the unit of work for the bot.
type Post struct {
	ID        string
	Title     string
	Author    string
	Body      string
	URL       string
	CreatedAt time.Time
}

// Comment is a single comment yielded by the live stream. PostID refers to
// the parent post; Author is empty or the deleted sentinel when the account
// no longer exists.
type Comment struct {
	ID        string
	PostID    string
	Author    string
	Body      string
	Permalink string
	CreatedAt time.Time
}

// ProcessedPost is the durable record written after a successful reply.
// One row per post id; a re-run replaces the previous row.
type ProcessedPost struct {
	ID             int64
	PostID         string
	Title          string
	Author         string
	ReplyPermalink string
	Status         string
	CreatedAt      time.Time
}

// StatusBeautified is the default status tag for processed posts.
const StatusBeautified = "beautified"

// DeletedAuthor is stored as the post author when the account is gone.
const DeletedAuthor = "[deleted]"

// ValidationReason classifies why a post was rejected (or that it passed).
type ValidationReason string

const (
	ReasonValid    ValidationReason = "valid"
	ReasonNotText  ValidationReason = "not_text"
	ReasonTooShort ValidationReason = "too_short"
	ReasonTooLong  ValidationReason = "too_long"
)

// Outcome is the terminal branch a trigger event ended in.
type Outcome string

const (
	OutcomeBeautified Outcome = "beautified"
	OutcomeDuplicate  Outcome = "duplicate"
	OutcomeInvalid    Outcome = "invalid"
	OutcomeFailed     Outcome = "failed"
)

// Result is the processor's verdict for one trigger event. Expected business
// outcomes (duplicate, invalid, failed) travel here rather than as errors;
// Err carries the underlying cause for logging on the failed branch.
type Result struct {
	Outcome        Outcome
	PostID         string
	Reason         ValidationReason
	ReplyPermalink string
	Err            error
}
