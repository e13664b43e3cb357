package bot

import (
	"context"
	"sync"

	"github.com/neelspatel02/BeautifyBot/internal/core/domain"
	"github.com/neelspatel02/BeautifyBot/internal/core/ports"
)

// fakeSite serves GetPost and records posted replies.
type fakeSite struct {
	mu        sync.Mutex
	posts     map[string]domain.Post
	getErr    error
	replyErr  error
	permalink string
	replies   []string
	botName   string

	streamFn func(ctx context.Context, handler func(domain.Comment)) error
}

var _ ports.Site = (*fakeSite)(nil)

func (f *fakeSite) Name() string { return "fake" }

func (f *fakeSite) BotUsername() string {
	if f.botName == "" {
		return "BeautifyBot"
	}
	return f.botName
}

func (f *fakeSite) Initialize(ctx context.Context) error { return nil }

func (f *fakeSite) GetPost(ctx context.Context, postID string) (domain.Post, error) {
	if f.getErr != nil {
		return domain.Post{}, f.getErr
	}
	return f.posts[postID], nil
}

func (f *fakeSite) ReplyToComment(ctx context.Context, commentID, body string) (string, error) {
	if f.replyErr != nil {
		return "", f.replyErr
	}
	f.mu.Lock()
	f.replies = append(f.replies, body)
	f.mu.Unlock()
	return f.permalink, nil
}

func (f *fakeSite) StreamComments(ctx context.Context, handler func(domain.Comment)) error {
	if f.streamFn != nil {
		return f.streamFn(ctx, handler)
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeSite) sentReplies() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.replies...)
}

// fakeStore is an in-memory ports.Storage.
type fakeStore struct {
	mu        sync.Mutex
	recs      map[string]domain.ProcessedPost
	lookupErr error
	upsertErr error
}

var _ ports.Storage = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{recs: make(map[string]domain.ProcessedPost)}
}

func (f *fakeStore) Lookup(ctx context.Context, postID string) (string, bool, error) {
	if f.lookupErr != nil {
		return "", false, f.lookupErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[postID]
	if !ok {
		return "", false, nil
	}
	return rec.ReplyPermalink, true, nil
}

func (f *fakeStore) Upsert(ctx context.Context, rec domain.ProcessedPost) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs[rec.PostID] = rec
	return nil
}

func (f *fakeStore) Close() error { return nil }

// fakeBrain counts invocations.
type fakeBrain struct {
	mu    sync.Mutex
	out   string
	err   error
	calls int
}

var _ ports.Brain = (*fakeBrain)(nil)

func (f *fakeBrain) Beautify(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func (f *fakeBrain) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
