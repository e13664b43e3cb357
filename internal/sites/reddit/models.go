package reddit

// Wire types for the subset of the Reddit JSON API the bot touches.

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
	Error       string `json:"error"`
}

type meResponse struct {
	Name string `json:"name"`
}

// listing is the generic Listing envelope; Data on each child depends on the
// thing kind ("t1" comment, "t3" link).
type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []thing `json:"children"`
	} `json:"data"`
}

type thing struct {
	Kind string    `json:"kind"`
	Data thingData `json:"data"`
}

type thingData struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Author     string  `json:"author"`
	Body       string  `json:"body"`
	LinkID     string  `json:"link_id"`
	Title      string  `json:"title"`
	SelfText   string  `json:"selftext"`
	IsSelf     bool    `json:"is_self"`
	Permalink  string  `json:"permalink"`
	URL        string  `json:"url"`
	CreatedUTC float64 `json:"created_utc"`
}

// commentReplyResponse is the api_type=json envelope returned by /api/comment.
type commentReplyResponse struct {
	JSON struct {
		Errors [][]string `json:"errors"`
		Data   struct {
			Things []thing `json:"things"`
		} `json:"data"`
	} `json:"json"`
}
