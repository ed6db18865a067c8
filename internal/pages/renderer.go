package pages

// PostView is everything the rendering layer needs for the post header on
// the detail page. Author fields are already escaped and anonymity-merged.
type PostView struct {
	ID          uint
	AuthorName  string
	AuthorClass string
	Title       string
	Content     string // sanitized HTML, rendered as-is
	Likes       int
	Liked       bool
	Saved       bool
	Edited      bool
	Timestamp   string
	CanEdit     bool
	CanDelete   bool
}

// ReplyView mirrors PostView for a single reply. Children is non-nil only
// for top-level replies.
type ReplyView struct {
	ID          uint
	AuthorName  string
	AuthorClass string
	Content     string
	Likes       int
	Liked       bool
	Timestamp   string
	CanDelete   bool
	Children    []ReplyView
}

// ThreadView is the rendered reply section.
type ThreadView struct {
	Count   int
	Replies []ReplyView
}

// PostCardView is one post card on the feed or saved page.
type PostCardView struct {
	ID          uint
	AuthorName  string
	AuthorClass string
	Title       string
	Preview     string
	ShowMore    bool
	Likes       int
	Liked       bool
	Saved       bool
	ReplyCount  int
	Edited      bool
	Timestamp   string
	CanEdit     bool
	CanDelete   bool
}

// Renderer is the detail page's rendering boundary. Confirm blocks until
// the viewer answers; everything else is fire-and-forget into the view.
type Renderer interface {
	RenderPost(view PostView)
	RenderThread(view ThreadView)
	RenderToggle(subject Subject, state ToggleState)
	RenderEmptyState(title, message string)
	ShowAlert(title, message string)
	Confirm(title, message string) bool
	Navigate(target string)
}

// FeedRenderer is the listing pages' rendering boundary.
type FeedRenderer interface {
	RenderFeed(cards []PostCardView, hasMore bool)
	RenderToggle(subject Subject, state ToggleState)
	RenderEmptyState(title, message string)
	ShowAlert(title, message string)
	Confirm(title, message string) bool
	Navigate(target string)
}
