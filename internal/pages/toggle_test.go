package pages

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
)

func newTestToggler(s *memStore) (*Toggler, *ViewState, *fakeRenderer) {
	state := NewViewState()
	renderer := &fakeRenderer{}
	t := NewToggler(state, renderer, memPosts{s}, memReplies{s}, memPostLikes{s}, memReplyLikes{s}, memSaves{s})
	t.logf = func(string, ...any) {}
	return t, state, renderer
}

func TestTogglePostLikeOn(t *testing.T) {
	s := newMemStore()
	post := s.addPost(models.Post{Likes: 3, CreatedAt: time.Now()})
	tog, state, renderer := newTestToggler(s)
	state.Put(PostSubject(post.ID), ToggleState{Liked: false, Likes: 3})

	tog.TogglePostLike(7, post.ID)

	st := state.Get(PostSubject(post.ID))
	assert.True(t, st.Liked)
	assert.Equal(t, 4, st.Likes)
	assert.True(t, s.likes[[2]uint{post.ID, 7}])
	assert.Equal(t, 4, s.posts[post.ID].Likes)
	assert.Len(t, renderer.toggles, 1)
	assert.Empty(t, renderer.alerts)
}

func TestTogglePostLikeOff(t *testing.T) {
	s := newMemStore()
	post := s.addPost(models.Post{Likes: 3, CreatedAt: time.Now()})
	s.likes[[2]uint{post.ID, 7}] = true
	tog, state, _ := newTestToggler(s)
	state.Put(PostSubject(post.ID), ToggleState{Liked: true, Likes: 3})

	tog.TogglePostLike(7, post.ID)

	st := state.Get(PostSubject(post.ID))
	assert.False(t, st.Liked)
	assert.Equal(t, 2, st.Likes)
	assert.False(t, s.likes[[2]uint{post.ID, 7}])
	assert.Equal(t, 2, s.posts[post.ID].Likes)
}

func TestTogglePostLikeRendersBeforeStore(t *testing.T) {
	s := newMemStore()
	post := s.addPost(models.Post{Likes: 1})
	s.failLike = errors.New("network down")
	tog, state, renderer := newTestToggler(s)
	state.Put(PostSubject(post.ID), ToggleState{Likes: 1})

	tog.TogglePostLike(7, post.ID)

	// The optimistic render happened first, then the revert render.
	assert.Len(t, renderer.toggles, 2)
	assert.Equal(t, ToggleState{Liked: true, Likes: 2}, renderer.toggles[0].state)
	assert.Equal(t, ToggleState{Liked: false, Likes: 1}, renderer.toggles[1].state)
	assert.Equal(t, ToggleState{Liked: false, Likes: 1}, state.Get(PostSubject(post.ID)))
}

func TestTogglePostLikeSilentOnFailure(t *testing.T) {
	s := newMemStore()
	post := s.addPost(models.Post{})
	s.failLike = errors.New("network down")
	tog, _, renderer := newTestToggler(s)

	tog.TogglePostLike(7, post.ID)

	assert.Empty(t, renderer.alerts)
}

func TestTogglePostLikeRevertsWhenCounterFails(t *testing.T) {
	s := newMemStore()
	post := s.addPost(models.Post{Likes: 5})
	s.failCounter = errors.New("counter unavailable")
	tog, state, renderer := newTestToggler(s)
	state.Put(PostSubject(post.ID), ToggleState{Likes: 5})

	tog.TogglePostLike(7, post.ID)

	// Membership succeeded but the counter call failed; the view reverts
	// all the way.
	assert.Equal(t, ToggleState{Liked: false, Likes: 5}, state.Get(PostSubject(post.ID)))
	assert.Equal(t, ToggleState{Liked: false, Likes: 5}, renderer.lastToggle().state)
	assert.Empty(t, renderer.alerts)
}

func TestTogglePostLikeRapidParity(t *testing.T) {
	s := newMemStore()
	post := s.addPost(models.Post{Likes: 2})
	tog, state, _ := newTestToggler(s)
	state.Put(PostSubject(post.ID), ToggleState{Likes: 2})

	for i := 0; i < 7; i++ {
		tog.TogglePostLike(7, post.ID)
	}
	st := state.Get(PostSubject(post.ID))
	assert.True(t, st.Liked)
	assert.Equal(t, 3, st.Likes)

	tog.TogglePostLike(7, post.ID)
	st = state.Get(PostSubject(post.ID))
	assert.False(t, st.Liked)
	assert.Equal(t, 2, st.Likes)
}

func TestTogglePostLikeFloorsAtZero(t *testing.T) {
	s := newMemStore()
	post := s.addPost(models.Post{Likes: 0})
	tog, state, _ := newTestToggler(s)
	// Stale record claiming a like with a zero counter.
	state.Put(PostSubject(post.ID), ToggleState{Liked: true, Likes: 0})
	s.likes[[2]uint{post.ID, 7}] = true

	tog.TogglePostLike(7, post.ID)

	assert.Equal(t, 0, state.Get(PostSubject(post.ID)).Likes)
	assert.Equal(t, 0, s.posts[post.ID].Likes)
}

func TestToggleReplyLike(t *testing.T) {
	s := newMemStore()
	reply := s.addReply(models.Reply{PostID: 1, Likes: 0})
	tog, state, _ := newTestToggler(s)
	state.Put(ReplySubject(reply.ID), ToggleState{})

	tog.ToggleReplyLike(9, reply.ID)
	assert.True(t, state.Get(ReplySubject(reply.ID)).Liked)
	assert.Equal(t, 1, s.replies[reply.ID].Likes)

	tog.ToggleReplyLike(9, reply.ID)
	assert.False(t, state.Get(ReplySubject(reply.ID)).Liked)
	assert.Equal(t, 0, s.replies[reply.ID].Likes)
}

func TestToggleSave(t *testing.T) {
	s := newMemStore()
	post := s.addPost(models.Post{Likes: 4})
	tog, state, _ := newTestToggler(s)
	state.Put(PostSubject(post.ID), ToggleState{Likes: 4})

	tog.ToggleSave(7, post.ID)
	st := state.Get(PostSubject(post.ID))
	assert.True(t, st.Saved)
	// Saving never touches the like fields.
	assert.False(t, st.Liked)
	assert.Equal(t, 4, st.Likes)
	assert.True(t, s.saves[[2]uint{7, post.ID}])

	tog.ToggleSave(7, post.ID)
	assert.False(t, state.Get(PostSubject(post.ID)).Saved)
	assert.False(t, s.saves[[2]uint{7, post.ID}])
}

func TestToggleSaveRevertsSilently(t *testing.T) {
	s := newMemStore()
	post := s.addPost(models.Post{})
	s.failSave = errors.New("network down")
	tog, state, renderer := newTestToggler(s)

	tog.ToggleSave(7, post.ID)

	assert.False(t, state.Get(PostSubject(post.ID)).Saved)
	assert.Empty(t, renderer.alerts)
	assert.Len(t, renderer.toggles, 2)
}

func TestReportAlertsForLoudOps(t *testing.T) {
	s := newMemStore()
	tog, _, renderer := newTestToggler(s)

	tog.Report(OpToggleLike, errors.New("boom"))
	tog.Report(OpToggleSave, errors.New("boom"))
	assert.Empty(t, renderer.alerts)

	tog.Report(OpSubmitReply, errors.New("boom"))
	assert.Len(t, renderer.alerts, 1)
	assert.Equal(t, "Error: Failed to submit reply. Please try again.", renderer.alerts[0])
}
