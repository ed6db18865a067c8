package pages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/session"
)

func newSavedController(s *memStore, sess session.Session) (*SavedPostsController, *fakeRenderer) {
	renderer := &fakeRenderer{}
	c := NewSavedPostsController(
		sess,
		memPosts{s}, memReplies{s}, memPostLikes{s}, memReplyLikes{s}, memSaves{s}, memProfiles{s},
		renderer,
	)
	c.logf = func(string, ...any) {}
	return c, renderer
}

func save(s *memStore, userID, postID uint) {
	s.saves[[2]uint{userID, postID}] = true
	s.saveSeq = append(s.saveSeq, postID)
}

func TestSavedPostsLoadInSaveOrder(t *testing.T) {
	s := newMemStore()
	old := s.addPost(models.Post{UserID: 1, Title: "old", CreatedAt: time.Now().Add(-time.Hour)})
	recent := s.addPost(models.Post{UserID: 1, Title: "recent", CreatedAt: time.Now()})
	// The older post was saved last, so it leads.
	save(s, 9, recent.ID)
	save(s, 9, old.ID)

	c, renderer := newSavedController(s, session.Session{UserID: 9})
	require.NoError(t, c.Load())

	cards := renderer.lastFeed()
	require.Len(t, cards, 2)
	assert.Equal(t, old.ID, cards[0].ID)
	assert.Equal(t, recent.ID, cards[1].ID)
	assert.False(t, renderer.hasMore)
	assert.True(t, cards[0].Saved)
}

func TestSavedPostsEmptyState(t *testing.T) {
	s := newMemStore()
	c, renderer := newSavedController(s, session.Session{UserID: 9})

	require.NoError(t, c.Load())

	assert.Equal(t, []string{"No saved posts"}, renderer.empty)
}

func TestSavedPostsSkipsDeletedPosts(t *testing.T) {
	s := newMemStore()
	p := s.addPost(models.Post{UserID: 1})
	save(s, 9, p.ID)
	save(s, 9, 999) // save row pointing at a post deleted since

	c, renderer := newSavedController(s, session.Session{UserID: 9})
	require.NoError(t, c.Load())

	cards := renderer.lastFeed()
	require.Len(t, cards, 1)
	assert.Equal(t, p.ID, cards[0].ID)
}

func TestSavedPostsAllDeletedShowsEmptyState(t *testing.T) {
	s := newMemStore()
	save(s, 9, 999)

	c, renderer := newSavedController(s, session.Session{UserID: 9})
	require.NoError(t, c.Load())

	assert.Equal(t, []string{"No saved posts"}, renderer.empty)
	assert.Empty(t, renderer.feeds)
}

func TestSavedPostsUnsaveKeepsCard(t *testing.T) {
	s := newMemStore()
	p := s.addPost(models.Post{UserID: 1})
	save(s, 9, p.ID)

	c, renderer := newSavedController(s, session.Session{UserID: 9})
	require.NoError(t, c.Load())

	c.ToggleSave(p.ID)

	// Only the toggle control re-rendered; the card list is untouched
	// until the next load.
	assert.False(t, c.State().Get(PostSubject(p.ID)).Saved)
	assert.Len(t, renderer.feeds, 1)
	assert.False(t, s.saves[[2]uint{9, p.ID}])
}
