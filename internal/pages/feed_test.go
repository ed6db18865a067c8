package pages

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/session"
)

func newFeedController(s *memStore, sess session.Session) (*FeedController, *fakeRenderer) {
	renderer := &fakeRenderer{}
	c := NewFeedController(
		sess,
		memPosts{s}, memReplies{s}, memPostLikes{s}, memReplyLikes{s}, memSaves{s}, memProfiles{s},
		renderer,
	)
	c.logf = func(string, ...any) {}
	return c, renderer
}

func seedFeed(s *memStore, n int) []uint {
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		p := s.addPost(models.Post{
			UserID:    1,
			Name:      "Budi",
			Title:     fmt.Sprintf("Post %d", i+1),
			Content:   "<p>body</p>",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		ids = append(ids, p.ID)
	}
	return ids
}

func TestFeedLoadFirstPage(t *testing.T) {
	s := newMemStore()
	ids := seedFeed(s, 10)
	c, renderer := newFeedController(s, session.Session{UserID: 9})

	require.NoError(t, c.Load())

	cards := renderer.lastFeed()
	require.Len(t, cards, PostsPerPage)
	assert.True(t, renderer.hasMore)
	// Newest first.
	assert.Equal(t, ids[len(ids)-1], cards[0].ID)
}

func TestFeedLoadMore(t *testing.T) {
	s := newMemStore()
	seedFeed(s, 10)
	c, renderer := newFeedController(s, session.Session{UserID: 9})
	require.NoError(t, c.Load())

	c.LoadMore()
	assert.Len(t, renderer.lastFeed(), 10)
	assert.False(t, renderer.hasMore)

	// Nothing left; no extra render.
	renders := len(renderer.feeds)
	c.LoadMore()
	assert.Equal(t, renders, len(renderer.feeds))
}

func TestFeedEmptyState(t *testing.T) {
	s := newMemStore()
	c, renderer := newFeedController(s, session.Session{UserID: 9})

	require.NoError(t, c.Load())

	assert.Equal(t, []string{"No posts yet"}, renderer.empty)
	assert.Empty(t, renderer.feeds)
}

func TestFeedSeedsToggleRecords(t *testing.T) {
	s := newMemStore()
	ids := seedFeed(s, 3)
	s.posts[ids[0]].Likes = 5
	s.likes[[2]uint{ids[0], 9}] = true
	s.saves[[2]uint{9, ids[1]}] = true
	s.saveSeq = append(s.saveSeq, ids[1])

	c, renderer := newFeedController(s, session.Session{UserID: 9})
	require.NoError(t, c.Load())

	assert.Equal(t, ToggleState{Liked: true, Likes: 5}, c.State().Get(PostSubject(ids[0])))
	assert.Equal(t, ToggleState{Saved: true}, c.State().Get(PostSubject(ids[1])))

	byID := make(map[uint]PostCardView)
	for _, card := range renderer.lastFeed() {
		byID[card.ID] = card
	}
	assert.True(t, byID[ids[0]].Liked)
	assert.Equal(t, 5, byID[ids[0]].Likes)
	assert.True(t, byID[ids[1]].Saved)
}

func TestFeedPreviewTruncation(t *testing.T) {
	s := newMemStore()
	long := strings.Join([]string{"one", "two", "three", "four", "five"}, "<br>")
	p := s.addPost(models.Post{UserID: 1, Content: long, CreatedAt: time.Now()})

	c, renderer := newFeedController(s, session.Session{UserID: 9})
	require.NoError(t, c.Load())

	card := renderer.lastFeed()[0]
	assert.Equal(t, p.ID, card.ID)
	assert.True(t, card.ShowMore)
	assert.Equal(t, "one<br>two<br>three...", card.Preview)
}

func TestFeedReplyCounts(t *testing.T) {
	s := newMemStore()
	ids := seedFeed(s, 2)
	s.addReply(models.Reply{PostID: ids[0], UserID: 2, Content: "<p>a</p>"})
	s.addReply(models.Reply{PostID: ids[0], UserID: 3, Content: "<p>b</p>"})

	c, renderer := newFeedController(s, session.Session{UserID: 9})
	require.NoError(t, c.Load())

	byID := make(map[uint]PostCardView)
	for _, card := range renderer.lastFeed() {
		byID[card.ID] = card
	}
	assert.Equal(t, 2, byID[ids[0]].ReplyCount)
	assert.Equal(t, 0, byID[ids[1]].ReplyCount)
}

func TestFeedToggleUpdatesState(t *testing.T) {
	s := newMemStore()
	ids := seedFeed(s, 1)
	c, renderer := newFeedController(s, session.Session{UserID: 9})
	require.NoError(t, c.Load())

	c.TogglePostLike(ids[0])
	assert.True(t, c.State().Get(PostSubject(ids[0])).Liked)
	assert.Equal(t, PostSubject(ids[0]), renderer.lastToggle().subject)

	c.ToggleSave(ids[0])
	assert.True(t, c.State().Get(PostSubject(ids[0])).Saved)
}
