package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/neelspatel02/BeautifyBot/internal/core/domain"
)

// seenCapacity bounds the set of comment ids remembered between polls. 100
// comments per page means the window comfortably covers several pages.
const seenCapacity = 500

// boundedSet remembers the most recent ids, evicting the oldest.
type boundedSet struct {
	ids   map[string]struct{}
	order []string
}

func newBoundedSet() *boundedSet {
	return &boundedSet{ids: make(map[string]struct{})}
}

func (s *boundedSet) has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *boundedSet) add(id string) {
	if s.has(id) {
		return
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
	if len(s.order) > seenCapacity {
		delete(s.ids, s.order[0])
		s.order = s.order[1:]
	}
}

// StreamComments polls the subreddit's newest comments and invokes handler
// for each comment not seen before, oldest first. The first poll only seeds
// the seen set, so only comments arriving after subscription are delivered.
// A poll failure ends the subscription with an error; the supervisor decides
// when to resubscribe. Returns ctx.Err() on cancellation.
func (c *Client) StreamComments(ctx context.Context, handler func(domain.Comment)) error {
	seen := newBoundedSet()
	first := true

	for {
		comments, err := c.fetchComments(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("comment stream broken: %w", err)
		}

		// Listing is newest-first; walk it backwards.
		for i := len(comments) - 1; i >= 0; i-- {
			cm := comments[i]
			if seen.has(cm.ID) {
				continue
			}
			seen.add(cm.ID)
			if first {
				continue
			}
			handler(cm)
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		first = false

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.opts.PollInterval):
		}
	}
}

func (c *Client) fetchComments(ctx context.Context) ([]domain.Comment, error) {
	path := fmt.Sprintf("/r/%s/comments?limit=100&raw_json=1", url.PathEscape(c.opts.Subreddit))
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var list listing
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode comment listing: %w", err)
	}

	comments := make([]domain.Comment, 0, len(list.Data.Children))
	for _, child := range list.Data.Children {
		if child.Kind != "t1" {
			continue
		}
		d := child.Data
		comments = append(comments, domain.Comment{
			ID:        d.ID,
			PostID:    strings.TrimPrefix(d.LinkID, "t3_"),
			Author:    d.Author,
			Body:      d.Body,
			Permalink: d.Permalink,
			CreatedAt: time.Unix(int64(d.CreatedUTC), 0).UTC(),
		})
	}
	return comments, nil
}
