package pages

import (
	"log"
	"time"

	"github.com/pacifora/sahabat-ktb/backend/internal/format"
	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/repositories"
	"github.com/pacifora/sahabat-ktb/backend/internal/session"
)

// PostsPerPage is the feed page size for the load-more control.
const PostsPerPage = 8

// PreviewLines is how many content lines a feed card shows before the
// "show more" cutoff.
const PreviewLines = 3

// FeedController drives the home feed: the paged post list, per-card
// like/save toggles and reply counts.
type FeedController struct {
	sess      session.Session
	posts     repositories.PostRepository
	replies   repositories.ReplyRepository
	postLikes repositories.PostLikeRepository
	saved     repositories.SavedPostRepository
	profiles  repositories.UserProfileRepository
	renderer  FeedRenderer

	state   *ViewState
	toggler *Toggler

	all    []models.Post
	shown  int
	now    func() time.Time
	logf   func(format string, v ...any)
}

// NewFeedController wires a controller for one feed view.
func NewFeedController(
	sess session.Session,
	posts repositories.PostRepository,
	replies repositories.ReplyRepository,
	postLikes repositories.PostLikeRepository,
	replyLikes repositories.ReplyLikeRepository,
	saved repositories.SavedPostRepository,
	profiles repositories.UserProfileRepository,
	renderer FeedRenderer,
) *FeedController {
	state := NewViewState()
	return &FeedController{
		sess:      sess,
		posts:     posts,
		replies:   replies,
		postLikes: postLikes,
		saved:     saved,
		profiles:  profiles,
		renderer:  renderer,
		state:     state,
		toggler:   NewToggler(state, renderer, posts, replies, postLikes, replyLikes, saved),
		now:       time.Now,
		logf:      log.Printf,
	}
}

// State exposes the page's toggle records.
func (c *FeedController) State() *ViewState {
	return c.state
}

// Load fetches the full post list newest-first, seeds the toggle records
// from the viewer's memberships and renders the first page.
func (c *FeedController) Load() error {
	posts, err := c.posts.GetAllPosts()
	if err != nil {
		c.renderer.RenderEmptyState("Something went wrong", "Could not load posts. Please refresh the page.")
		return err
	}
	c.all = posts
	c.shown = 0

	if len(posts) == 0 {
		c.renderer.RenderEmptyState("No posts yet", "Be the first to share something with the community.")
		return nil
	}

	liked := c.likedSet()
	savedSet := c.savedSet()
	for _, p := range posts {
		c.state.Put(PostSubject(p.ID), ToggleState{
			Liked: liked[p.ID],
			Saved: savedSet[p.ID],
			Likes: p.Likes,
		})
	}

	c.shown = min(PostsPerPage, len(posts))
	c.renderPage()
	return nil
}

// LoadMore reveals the next page of already fetched posts.
func (c *FeedController) LoadMore() {
	if c.shown >= len(c.all) {
		return
	}
	c.shown = min(c.shown+PostsPerPage, len(c.all))
	c.renderPage()
}

func (c *FeedController) renderPage() {
	visible := c.all[:c.shown]

	ids := make([]uint, 0, len(visible))
	for _, p := range visible {
		ids = append(ids, p.ID)
	}
	counts, err := c.replies.GetReplyCounts(ids)
	if err != nil {
		c.logf("error loading reply counts: %v", err)
		counts = map[uint]int{}
	}
	profiles := c.cardProfiles(visible)

	cards := make([]PostCardView, 0, len(visible))
	for _, p := range visible {
		cards = append(cards, c.card(p, counts[p.ID], profiles))
	}
	c.renderer.RenderFeed(cards, c.shown < len(c.all))
}

func (c *FeedController) card(p models.Post, replyCount int, profiles map[uint]models.UserProfile) PostCardView {
	st := c.state.Get(PostSubject(p.ID))
	name, class := displayAuthor(p.IsAnonymous, p.Name, p.Class, p.UserID, profiles)
	preview, truncated := format.TruncatePreview(p.Content, PreviewLines)
	return PostCardView{
		ID:          p.ID,
		AuthorName:  name,
		AuthorClass: class,
		Title:       format.EscapeText(p.Title),
		Preview:     preview,
		ShowMore:    truncated,
		Likes:       st.Likes,
		Liked:       st.Liked,
		Saved:       st.Saved,
		ReplyCount:  replyCount,
		Edited:      p.Edited(),
		Timestamp:   format.RelativeTime(p.CreatedAt, c.now()),
		CanEdit:     c.sess.CanEdit(p.UserID),
		CanDelete:   c.sess.CanDelete(p.UserID),
	}
}

func (c *FeedController) cardProfiles(posts []models.Post) map[uint]models.UserProfile {
	seen := map[uint]bool{}
	var ids []uint
	for _, p := range posts {
		if p.IsAnonymous || seen[p.UserID] {
			continue
		}
		seen[p.UserID] = true
		ids = append(ids, p.UserID)
	}
	profiles, err := c.profiles.GetByUserIDs(ids)
	if err != nil {
		c.logf("error loading author profiles: %v", err)
		return map[uint]models.UserProfile{}
	}
	return profiles
}

func (c *FeedController) likedSet() map[uint]bool {
	set := make(map[uint]bool)
	ids, err := c.postLikes.GetLikedPostIDs(c.sess.UserID)
	if err != nil {
		c.logf("error loading liked posts: %v", err)
		return set
	}
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (c *FeedController) savedSet() map[uint]bool {
	set := make(map[uint]bool)
	ids, err := c.saved.GetSavedPostIDs(c.sess.UserID)
	if err != nil {
		c.logf("error loading saved posts: %v", err)
		return set
	}
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// TogglePostLike flips the viewer's like on a feed card.
func (c *FeedController) TogglePostLike(postID uint) {
	c.toggler.TogglePostLike(c.sess.UserID, postID)
}

// ToggleSave flips the viewer's bookmark on a feed card.
func (c *FeedController) ToggleSave(postID uint) {
	c.toggler.ToggleSave(c.sess.UserID, postID)
}

// DeletePost asks for confirmation, deletes the post and reloads the feed.
func (c *FeedController) DeletePost(post *models.Post) {
	if !c.sess.CanDelete(post.UserID) {
		return
	}
	if !c.renderer.Confirm("Delete Post", "Are you sure you want to delete this post? This action cannot be undone.") {
		return
	}
	if err := c.posts.DeletePost(post.ID); err != nil {
		c.logf("error deleting post %d: %v", post.ID, err)
		c.renderer.ShowAlert("Error", "Failed to delete post. Please try again.")
		return
	}
	if err := c.Load(); err != nil {
		c.logf("error reloading feed: %v", err)
	}
}
