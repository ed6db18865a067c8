package pages

import (
	"log"
	"time"

	"github.com/pacifora/sahabat-ktb/backend/internal/editor"
	"github.com/pacifora/sahabat-ktb/backend/internal/format"
	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/repositories"
	"github.com/pacifora/sahabat-ktb/backend/internal/session"
	"github.com/pacifora/sahabat-ktb/backend/internal/thread"
)

// PostDetailController orchestrates the post detail page: the load burst,
// the reply thread, like/save toggles and the reply composers. One
// controller instance lives for one page view.
type PostDetailController struct {
	sess       session.Session
	posts      repositories.PostRepository
	replies    repositories.ReplyRepository
	postLikes  repositories.PostLikeRepository
	replyLikes repositories.ReplyLikeRepository
	saved      repositories.SavedPostRepository
	profiles   repositories.UserProfileRepository
	renderer   Renderer

	state     *ViewState
	toggler   *Toggler
	composer  *Composer
	nested    map[uint]*Composer
	newEditor func() editor.Editor
	now       func() time.Time
	logf      func(format string, v ...any)
}

// NewPostDetailController wires a controller for one page view.
func NewPostDetailController(
	sess session.Session,
	posts repositories.PostRepository,
	replies repositories.ReplyRepository,
	postLikes repositories.PostLikeRepository,
	replyLikes repositories.ReplyLikeRepository,
	saved repositories.SavedPostRepository,
	profiles repositories.UserProfileRepository,
	renderer Renderer,
	newEditor func() editor.Editor,
) *PostDetailController {
	state := NewViewState()
	c := &PostDetailController{
		sess:       sess,
		posts:      posts,
		replies:    replies,
		postLikes:  postLikes,
		replyLikes: replyLikes,
		saved:      saved,
		profiles:   profiles,
		renderer:   renderer,
		state:      state,
		nested:     make(map[uint]*Composer),
		newEditor:  newEditor,
		now:        time.Now,
		logf:       log.Printf,
	}
	c.toggler = NewToggler(state, renderer, posts, replies, postLikes, replyLikes, saved)
	c.composer = NewComposer(newEditor(), renderer)
	return c
}

// State exposes the page's toggle records, mainly for the rendering layer.
func (c *PostDetailController) State() *ViewState {
	return c.state
}

// Composer returns the top-level reply composer.
func (c *PostDetailController) Composer() *Composer {
	return c.composer
}

// NestedComposer returns the composer attached to a top-level reply,
// creating it on first use.
func (c *PostDetailController) NestedComposer(replyID uint) *Composer {
	if comp, ok := c.nested[replyID]; ok {
		return comp
	}
	comp := NewComposer(c.newEditor(), c.renderer)
	c.nested[replyID] = comp
	return comp
}

// Load performs the page-load burst: post row, reply list, the viewer's
// like and save membership, and the live author profiles, as independent
// fetches. It then seeds the toggle records and renders post and thread.
func (c *PostDetailController) Load(postID uint) error {
	post, err := c.posts.GetPostByID(postID)
	if err != nil {
		c.renderer.RenderEmptyState("Post not found", "The post you're looking for doesn't exist or has been removed.")
		return err
	}

	replies, err := c.replies.GetRepliesByPostID(postID)
	if err != nil {
		c.renderer.RenderEmptyState("Could not load replies", "Something went wrong loading the replies. Please try again.")
		return err
	}

	liked, err := c.postLikes.HasUserLikedPost(postID, c.sess.UserID)
	if err != nil {
		c.logf("error loading like state for post %d: %v", postID, err)
	}
	savedFlag, err := c.saved.IsPostSaved(c.sess.UserID, postID)
	if err != nil {
		c.logf("error loading save state for post %d: %v", postID, err)
	}

	likedReplies := make(map[uint]bool)
	if ids, err := c.replyLikes.GetLikedReplyIDs(c.sess.UserID); err != nil {
		c.logf("error loading reply likes: %v", err)
	} else {
		for _, id := range ids {
			likedReplies[id] = true
		}
	}

	profiles := c.loadProfiles(post, replies)

	c.state.Put(PostSubject(post.ID), ToggleState{Liked: liked, Saved: savedFlag, Likes: post.Likes})
	for _, r := range replies {
		c.state.Put(ReplySubject(r.ID), ToggleState{Liked: likedReplies[r.ID], Likes: r.Likes})
	}

	c.renderer.RenderPost(c.postView(post, profiles))

	nodes := thread.Build(replies)
	view := ThreadView{Count: thread.Count(nodes)}
	for _, n := range nodes {
		rv := c.replyView(n.Reply, likedReplies, profiles)
		for _, child := range n.Children {
			rv.Children = append(rv.Children, c.replyView(child, likedReplies, profiles))
		}
		view.Replies = append(view.Replies, rv)
	}
	c.renderer.RenderThread(view)

	return nil
}

func (c *PostDetailController) loadProfiles(post *models.Post, replies []models.Reply) map[uint]models.UserProfile {
	seen := map[uint]bool{}
	var ids []uint
	add := func(userID uint, anonymous bool) {
		if anonymous || seen[userID] {
			return
		}
		seen[userID] = true
		ids = append(ids, userID)
	}
	add(post.UserID, post.IsAnonymous)
	for _, r := range replies {
		add(r.UserID, r.IsAnonymous)
	}

	profiles, err := c.profiles.GetByUserIDs(ids)
	if err != nil {
		c.logf("error loading author profiles: %v", err)
		return map[uint]models.UserProfile{}
	}
	return profiles
}

func (c *PostDetailController) postView(post *models.Post, profiles map[uint]models.UserProfile) PostView {
	st := c.state.Get(PostSubject(post.ID))
	name, class := displayAuthor(post.IsAnonymous, post.Name, post.Class, post.UserID, profiles)
	return PostView{
		ID:          post.ID,
		AuthorName:  name,
		AuthorClass: class,
		Title:       format.EscapeText(post.Title),
		Content:     post.Content,
		Likes:       st.Likes,
		Liked:       st.Liked,
		Saved:       st.Saved,
		Edited:      post.Edited(),
		Timestamp:   format.RelativeTime(post.CreatedAt, c.now()),
		CanEdit:     c.sess.CanEdit(post.UserID),
		CanDelete:   c.sess.CanDelete(post.UserID),
	}
}

func (c *PostDetailController) replyView(r models.Reply, likedReplies map[uint]bool, profiles map[uint]models.UserProfile) ReplyView {
	name, class := displayAuthor(r.IsAnonymous, r.Name, r.Class, r.UserID, profiles)
	return ReplyView{
		ID:          r.ID,
		AuthorName:  name,
		AuthorClass: class,
		Content:     r.Content,
		Likes:       r.Likes,
		Liked:       likedReplies[r.ID],
		Timestamp:   format.RelativeTime(r.CreatedAt, c.now()),
		CanDelete:   c.sess.CanDelete(r.UserID),
	}
}

func displayAuthor(anonymous bool, rowName, rowClass string, userID uint, profiles map[uint]models.UserProfile) (string, string) {
	var profile *models.UserProfile
	if p, ok := profiles[userID]; ok {
		profile = &p
	}
	name, class := models.DisplayAuthor(anonymous, rowName, rowClass, profile)
	return format.EscapeText(name), format.EscapeText(class)
}

// TogglePostLike flips the viewer's like on the post.
func (c *PostDetailController) TogglePostLike(postID uint) {
	c.toggler.TogglePostLike(c.sess.UserID, postID)
}

// ToggleReplyLike flips the viewer's like on a reply.
func (c *PostDetailController) ToggleReplyLike(replyID uint) {
	c.toggler.ToggleReplyLike(c.sess.UserID, replyID)
}

// ToggleSave flips the viewer's bookmark on the post.
func (c *PostDetailController) ToggleSave(postID uint) {
	c.toggler.ToggleSave(c.sess.UserID, postID)
}

// SubmitReply submits the top-level composer's content as a new reply and
// reloads the thread on success.
func (c *PostDetailController) SubmitReply(postID uint, anonymous bool) {
	c.composer.Submit(func(content string) error {
		return c.insertReply(postID, nil, content, anonymous)
	})
	if c.composer.State() == ComposerHidden {
		c.reload(postID)
	}
}

// SubmitNestedReply submits a nested composer's content as a child of the
// given top-level reply.
func (c *PostDetailController) SubmitNestedReply(postID, parentReplyID uint, anonymous bool) {
	comp := c.NestedComposer(parentReplyID)
	comp.Submit(func(content string) error {
		return c.insertReply(postID, &parentReplyID, content, anonymous)
	})
	if comp.State() == ComposerHidden {
		c.reload(postID)
	}
}

func (c *PostDetailController) insertReply(postID uint, parentReplyID *uint, content string, anonymous bool) error {
	return c.replies.CreateReply(&models.Reply{
		PostID:        postID,
		ParentReplyID: parentReplyID,
		UserID:        c.sess.UserID,
		Name:          c.sess.DisplayName(),
		Class:         c.sess.Class,
		Content:       content,
		IsAnonymous:   anonymous,
	})
}

// DeletePost asks for confirmation, deletes the post and navigates home.
// The control only exists for the author or an admin; this re-check is a
// guard, not the enforcement point.
func (c *PostDetailController) DeletePost(post *models.Post) {
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
	c.renderer.Navigate("index")
}

// DeleteReply asks for confirmation, deletes the reply and reloads the
// thread.
func (c *PostDetailController) DeleteReply(postID uint, reply *models.Reply) {
	if !c.sess.CanDelete(reply.UserID) {
		return
	}
	if !c.renderer.Confirm("Delete Reply", "Are you sure you want to delete this reply? This action cannot be undone.") {
		return
	}
	if err := c.replies.DeleteReply(reply.ID); err != nil {
		c.logf("error deleting reply %d: %v", reply.ID, err)
		c.renderer.ShowAlert("Error", "Failed to delete reply. Please try again.")
		return
	}
	c.reload(postID)
}

// EditPost navigates to the edit screen. Author-only; the admin role never
// grants edit.
func (c *PostDetailController) EditPost(post *models.Post) {
	if !c.sess.CanEdit(post.UserID) {
		return
	}
	c.renderer.Navigate("edit-post")
}

func (c *PostDetailController) reload(postID uint) {
	if err := c.Load(postID); err != nil {
		c.logf("error reloading post %d: %v", postID, err)
	}
}
