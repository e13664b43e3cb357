package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/neelspatel02/BeautifyBot/internal/core/domain"
	"github.com/neelspatel02/BeautifyBot/internal/core/ports"
)

const (
	DefaultBaseURL = "https://oauth.reddit.com"
	DefaultAuthURL = "https://www.reddit.com"

	// LinkPrefix turns a relative permalink into a durable reference.
	LinkPrefix = "https://reddit.com"
)

// Options carries the script-app credentials and stream settings.
type Options struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
	Subreddit    string
	PollInterval time.Duration
}

// Client is the Reddit adapter. It authenticates with the password grant
// (script app), keeps the bearer token fresh, and implements ports.Site.
type Client struct {
	BaseURL    string
	AuthURL    string
	HTTPClient *http.Client

	opts Options

	mu       sync.Mutex
	token    string
	tokenExp time.Time
	me       string
}

func NewClient(opts Options) *Client {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Second
	}
	return &Client{
		BaseURL:    DefaultBaseURL,
		AuthURL:    DefaultAuthURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		opts:       opts,
	}
}

var _ ports.Site = (*Client)(nil)

func (c *Client) Name() string {
	return "reddit"
}

// BotUsername is the authenticated account name, used to ignore the bot's
// own comments.
func (c *Client) BotUsername() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.me != "" {
		return c.me
	}
	return c.opts.Username
}

// Initialize authenticates and resolves the bot's own identity. A failure
// here is a startup error and terminates the process.
func (c *Client) Initialize(ctx context.Context) error {
	if err := c.authenticate(ctx); err != nil {
		return fmt.Errorf("reddit authentication failed: %w", err)
	}

	body, err := c.get(ctx, "/api/v1/me")
	if err != nil {
		return fmt.Errorf("reddit identity check failed: %w", err)
	}
	var me meResponse
	if err := json.Unmarshal(body, &me); err != nil {
		return fmt.Errorf("reddit identity check failed: %w", err)
	}

	c.mu.Lock()
	c.me = me.Name
	c.mu.Unlock()
	return nil
}

func (c *Client) authenticate(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.opts.Username)
	form.Set("password", c.opts.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.AuthURL+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.opts.ClientID, c.opts.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return err
	}
	if tok.Error != "" || tok.AccessToken == "" {
		return fmt.Errorf("token request rejected: %s", tok.Error)
	}

	c.mu.Lock()
	c.token = tok.AccessToken
	c.tokenExp = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	c.mu.Unlock()
	return nil
}

// ensureToken refreshes the bearer token shortly before it expires.
func (c *Client) ensureToken(ctx context.Context) error {
	c.mu.Lock()
	fresh := c.token != "" && time.Until(c.tokenExp) > time.Minute
	c.mu.Unlock()
	if fresh {
		return nil
	}
	return c.authenticate(ctx)
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	req.Header.Set("Authorization", "Bearer "+c.token)
	c.mu.Unlock()
	req.Header.Set("User-Agent", c.opts.UserAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s failed with status %d", method, path, resp.StatusCode)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// GetPost fetches the parent post by id. A non-self post comes back with an
// empty Body, which the validator rejects as not_text.
func (c *Client) GetPost(ctx context.Context, postID string) (domain.Post, error) {
	body, err := c.get(ctx, "/api/info?raw_json=1&id=t3_"+url.QueryEscape(postID))
	if err != nil {
		return domain.Post{}, err
	}

	var list listing
	if err := json.Unmarshal(body, &list); err != nil {
		return domain.Post{}, fmt.Errorf("decode post %s: %w", postID, err)
	}
	if len(list.Data.Children) == 0 {
		return domain.Post{}, fmt.Errorf("post %s not found", postID)
	}

	d := list.Data.Children[0].Data
	post := domain.Post{
		ID:        d.ID,
		Title:     d.Title,
		Author:    d.Author,
		URL:       LinkPrefix + d.Permalink,
		CreatedAt: time.Unix(int64(d.CreatedUTC), 0).UTC(),
	}
	if d.IsSelf {
		post.Body = d.SelfText
	}
	return post, nil
}

// ReplyToComment posts a reply under the given comment and returns the
// permalink of the created reply, or "" when the API omits it.
func (c *Client) ReplyToComment(ctx context.Context, commentID, body string) (string, error) {
	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("thing_id", "t1_"+commentID)
	form.Set("text", body)

	respBody, err := c.do(ctx, http.MethodPost, "/api/comment", form)
	if err != nil {
		return "", err
	}

	var reply commentReplyResponse
	if err := json.Unmarshal(respBody, &reply); err != nil {
		return "", fmt.Errorf("decode reply response: %w", err)
	}
	if len(reply.JSON.Errors) > 0 {
		return "", fmt.Errorf("reply rejected: %s", strings.Join(reply.JSON.Errors[0], " "))
	}
	if len(reply.JSON.Data.Things) == 0 {
		return "", nil
	}

	permalink := reply.JSON.Data.Things[0].Data.Permalink
	if permalink == "" {
		return "", nil
	}
	return LinkPrefix + permalink, nil
}
