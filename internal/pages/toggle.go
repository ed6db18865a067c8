package pages

import (
	"log"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/repositories"
)

// OpKind classifies an operation for the error policy table.
type OpKind string

const (
	OpToggleLike  OpKind = "toggle like"
	OpToggleSave  OpKind = "toggle save"
	OpSubmitReply OpKind = "submit reply"
	OpDeletePost  OpKind = "delete post"
	OpDeleteReply OpKind = "delete reply"
)

// silentOps lists the low-stakes writes whose failures are rolled back and
// logged but never surfaced to the viewer. Everything else alerts.
var silentOps = map[OpKind]bool{
	OpToggleLike: true,
	OpToggleSave: true,
}

// Silent reports whether failures of the given operation stay off-screen.
func Silent(op OpKind) bool {
	return silentOps[op]
}

type toggleRenderer interface {
	RenderToggle(subject Subject, state ToggleState)
	ShowAlert(title, message string)
}

// Toggler flips like/save membership with optimistic rendering. The view
// state record is flipped and re-rendered before any store call; on
// failure of either dependent call the record and rendering revert to
// their pre-toggle values. Toggles on the same subject are deliberately
// not serialized: rapid clicks may interleave and the last response wins
// until the next full reload.
type Toggler struct {
	state      *ViewState
	renderer   toggleRenderer
	posts      repositories.PostRepository
	replies    repositories.ReplyRepository
	postLikes  repositories.PostLikeRepository
	replyLikes repositories.ReplyLikeRepository
	saved      repositories.SavedPostRepository
	logf       func(format string, v ...any)
}

// NewToggler creates a Toggler over the page's view state.
func NewToggler(
	state *ViewState,
	renderer toggleRenderer,
	posts repositories.PostRepository,
	replies repositories.ReplyRepository,
	postLikes repositories.PostLikeRepository,
	replyLikes repositories.ReplyLikeRepository,
	saved repositories.SavedPostRepository,
) *Toggler {
	return &Toggler{
		state:      state,
		renderer:   renderer,
		posts:      posts,
		replies:    replies,
		postLikes:  postLikes,
		replyLikes: replyLikes,
		saved:      saved,
		logf:       log.Printf,
	}
}

// TogglePostLike flips the viewer's like on a post: membership row first,
// then the atomic counter operation.
func (t *Toggler) TogglePostLike(userID, postID uint) {
	subject := PostSubject(postID)
	before := t.state.Get(subject)
	after := flipLike(before)

	t.state.Put(subject, after)
	t.renderer.RenderToggle(subject, after)

	var err error
	if before.Liked {
		err = t.postLikes.DeleteLike(postID, userID)
		if err == nil {
			err = t.posts.DecrementLikes(postID)
		}
	} else {
		err = t.postLikes.CreateLike(&models.PostLike{PostID: postID, UserID: userID})
		if err == nil {
			err = t.posts.IncrementLikes(postID)
		}
	}

	if err != nil {
		t.revert(subject, before, OpToggleLike, err)
	}
}

// ToggleReplyLike flips the viewer's like on a reply.
func (t *Toggler) ToggleReplyLike(userID, replyID uint) {
	subject := ReplySubject(replyID)
	before := t.state.Get(subject)
	after := flipLike(before)

	t.state.Put(subject, after)
	t.renderer.RenderToggle(subject, after)

	var err error
	if before.Liked {
		err = t.replyLikes.DeleteLike(replyID, userID)
		if err == nil {
			err = t.replies.DecrementLikes(replyID)
		}
	} else {
		err = t.replyLikes.CreateLike(&models.ReplyLike{ReplyID: replyID, UserID: userID})
		if err == nil {
			err = t.replies.IncrementLikes(replyID)
		}
	}

	if err != nil {
		t.revert(subject, before, OpToggleLike, err)
	}
}

// ToggleSave flips the viewer's bookmark on a post. Pure membership, no
// counter call.
func (t *Toggler) ToggleSave(userID, postID uint) {
	subject := PostSubject(postID)
	before := t.state.Get(subject)
	after := before
	after.Saved = !before.Saved

	t.state.Put(subject, after)
	t.renderer.RenderToggle(subject, after)

	var err error
	if before.Saved {
		err = t.saved.UnsavePost(userID, postID)
	} else {
		err = t.saved.SavePost(&models.SavedPost{UserID: userID, PostID: postID})
	}

	if err != nil {
		t.revert(subject, before, OpToggleSave, err)
	}
}

func (t *Toggler) revert(subject Subject, before ToggleState, op OpKind, err error) {
	t.state.Put(subject, before)
	t.renderer.RenderToggle(subject, before)
	t.Report(op, err)
}

// Report applies the error policy for an operation: silent operations are
// logged only, the rest raise a blocking alert naming the action.
func (t *Toggler) Report(op OpKind, err error) {
	t.logf("error on %s: %v", op, err)
	if !Silent(op) {
		t.renderer.ShowAlert("Error", "Failed to "+string(op)+". Please try again.")
	}
}

func flipLike(before ToggleState) ToggleState {
	after := before
	after.Liked = !before.Liked
	if after.Liked {
		after.Likes = before.Likes + 1
	} else {
		after.Likes = before.Likes - 1
		if after.Likes < 0 {
			after.Likes = 0
		}
	}
	return after
}
