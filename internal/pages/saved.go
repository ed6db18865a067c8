package pages

import (
	"log"
	"time"

	"github.com/pacifora/sahabat-ktb/backend/internal/format"
	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/repositories"
	"github.com/pacifora/sahabat-ktb/backend/internal/session"
)

// SavedPostsController drives the saved-posts page. Cards are ordered by
// when the viewer saved them, newest save first, not by post age.
type SavedPostsController struct {
	sess      session.Session
	posts     repositories.PostRepository
	replies   repositories.ReplyRepository
	postLikes repositories.PostLikeRepository
	saved     repositories.SavedPostRepository
	profiles  repositories.UserProfileRepository
	renderer  FeedRenderer

	state   *ViewState
	toggler *Toggler
	now     func() time.Time
	logf    func(format string, v ...any)
}

// NewSavedPostsController wires a controller for one saved-posts view.
func NewSavedPostsController(
	sess session.Session,
	posts repositories.PostRepository,
	replies repositories.ReplyRepository,
	postLikes repositories.PostLikeRepository,
	replyLikes repositories.ReplyLikeRepository,
	saved repositories.SavedPostRepository,
	profiles repositories.UserProfileRepository,
	renderer FeedRenderer,
) *SavedPostsController {
	state := NewViewState()
	return &SavedPostsController{
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
func (c *SavedPostsController) State() *ViewState {
	return c.state
}

// Load fetches the viewer's saved post IDs, resolves them to post rows and
// renders the cards in save order.
func (c *SavedPostsController) Load() error {
	ids, err := c.saved.GetSavedPostIDs(c.sess.UserID)
	if err != nil {
		c.renderer.RenderEmptyState("Something went wrong", "Could not load saved posts. Please refresh the page.")
		return err
	}
	if len(ids) == 0 {
		c.renderer.RenderEmptyState("No saved posts", "Posts you save will appear here.")
		return nil
	}

	rows, err := c.posts.GetPostsByIDs(ids)
	if err != nil {
		c.renderer.RenderEmptyState("Something went wrong", "Could not load saved posts. Please refresh the page.")
		return err
	}
	byID := make(map[uint]models.Post, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}

	// Saves may point at posts deleted since; keep the save order and drop
	// the gaps.
	posts := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			posts = append(posts, p)
		}
	}
	if len(posts) == 0 {
		c.renderer.RenderEmptyState("No saved posts", "Posts you save will appear here.")
		return nil
	}

	liked := make(map[uint]bool)
	if likedIDs, err := c.postLikes.GetLikedPostIDs(c.sess.UserID); err != nil {
		c.logf("error loading liked posts: %v", err)
	} else {
		for _, id := range likedIDs {
			liked[id] = true
		}
	}
	for _, p := range posts {
		c.state.Put(PostSubject(p.ID), ToggleState{Liked: liked[p.ID], Saved: true, Likes: p.Likes})
	}

	postIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}
	counts, err := c.replies.GetReplyCounts(postIDs)
	if err != nil {
		c.logf("error loading reply counts: %v", err)
		counts = map[uint]int{}
	}
	profiles := c.loadProfiles(posts)

	cards := make([]PostCardView, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, c.card(p, counts[p.ID], profiles))
	}
	c.renderer.RenderFeed(cards, false)
	return nil
}

func (c *SavedPostsController) card(p models.Post, replyCount int, profiles map[uint]models.UserProfile) PostCardView {
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

func (c *SavedPostsController) loadProfiles(posts []models.Post) map[uint]models.UserProfile {
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

// TogglePostLike flips the viewer's like on a saved card.
func (c *SavedPostsController) TogglePostLike(postID uint) {
	c.toggler.TogglePostLike(c.sess.UserID, postID)
}

// ToggleSave flips the viewer's bookmark. The card stays visible until the
// next load; only the toggle control updates.
func (c *SavedPostsController) ToggleSave(postID uint) {
	c.toggler.ToggleSave(c.sess.UserID, postID)
}
