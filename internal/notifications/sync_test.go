package notifications

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
)

type memNotifications struct {
	items  map[uint]*models.Notification
	nextID uint

	actorCalls int
	actors     map[uint]models.User

	failCount error
	failList  error
	failMark  error
}

func newMemNotifications() *memNotifications {
	return &memNotifications{
		items:  make(map[uint]*models.Notification),
		nextID: 1,
		actors: make(map[uint]models.User),
	}
}

func (m *memNotifications) add(n models.Notification) *models.Notification {
	n.ID = m.nextID
	m.nextID++
	m.items[n.ID] = &n
	return &n
}

func (m *memNotifications) CreateNotification(n *models.Notification) error {
	n.ID = m.nextID
	m.nextID++
	m.items[n.ID] = n
	return nil
}

func (m *memNotifications) GetRecent(recipientID uint, limit int) ([]models.Notification, error) {
	if m.failList != nil {
		return nil, m.failList
	}
	var out []models.Notification
	for _, n := range m.items {
		if n.RecipientID == recipientID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memNotifications) GetUnreadCount(recipientID uint) (int64, error) {
	if m.failCount != nil {
		return 0, m.failCount
	}
	var n int64
	for _, item := range m.items {
		if item.RecipientID == recipientID && !item.IsRead {
			n++
		}
	}
	return n, nil
}

func (m *memNotifications) MarkAsRead(notificationID uint) error {
	if m.failMark != nil {
		return m.failMark
	}
	if n, ok := m.items[notificationID]; ok {
		n.IsRead = true
	}
	return nil
}

func (m *memNotifications) MarkAllAsRead(recipientID uint) error {
	if m.failMark != nil {
		return m.failMark
	}
	for _, n := range m.items {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *memNotifications) DeleteByRecipientID(recipientID uint) error {
	for id, n := range m.items {
		if n.RecipientID == recipientID {
			delete(m.items, id)
		}
	}
	return nil
}

// memUsers implements the slice of UserRepository the synchronizer touches;
// the rest panic if reached.
type memUsers struct{ m *memNotifications }

func (u memUsers) CreateUser(*models.User) error                      { panic("not used") }
func (u memUsers) GetUserByID(uint) (*models.User, error)             { panic("not used") }
func (u memUsers) GetUserByEmail(string) (*models.User, error)        { panic("not used") }
func (u memUsers) GetUserByFirebaseUID(string) (*models.User, error)  { panic("not used") }
func (u memUsers) GetAllUserIDs() ([]uint, error)                     { panic("not used") }
func (u memUsers) UpdateUser(*models.User) error                      { panic("not used") }
func (u memUsers) DeleteUser(uint) error                              { panic("not used") }

func (u memUsers) GetUsersByIDs(ids []uint) (map[uint]models.User, error) {
	u.m.actorCalls++
	out := make(map[uint]models.User)
	for _, id := range ids {
		if actor, ok := u.m.actors[id]; ok {
			out[id] = actor
		}
	}
	return out, nil
}

type fakePanel struct {
	badge  string
	hidden bool
	lists  [][]View
	empty  int
}

func (f *fakePanel) RenderBadge(text string) { f.badge = text; f.hidden = false }
func (f *fakePanel) HideBadge()              { f.badge = ""; f.hidden = true }
func (f *fakePanel) RenderList(items []View) { f.lists = append(f.lists, items) }
func (f *fakePanel) RenderEmptyPanel()       { f.empty++ }

func newSync(m *memNotifications, recipientID uint) (*Synchronizer, *fakePanel) {
	panel := &fakePanel{}
	s := NewSynchronizer(recipientID, m, memUsers{m}, panel)
	s.logf = func(string, ...any) {}
	return s, panel
}

func uintPtr(v uint) *uint { return &v }

func TestBadgeText(t *testing.T) {
	tests := []struct {
		count int64
		want  string
	}{
		{0, ""},
		{-1, ""},
		{1, "1"},
		{99, "99"},
		{100, "99+"},
		{2500, "99+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BadgeText(tt.count), "count %d", tt.count)
	}
}

func TestUpdateBadge(t *testing.T) {
	m := newMemNotifications()
	s, panel := newSync(m, 9)

	require.NoError(t, s.UpdateBadge())
	assert.True(t, panel.hidden)

	m.add(models.Notification{RecipientID: 9, Type: models.NotificationPostLiked})
	m.add(models.Notification{RecipientID: 9, Type: models.NotificationPostReplied})
	m.add(models.Notification{RecipientID: 4, Type: models.NotificationPostLiked})

	require.NoError(t, s.UpdateBadge())
	assert.Equal(t, "2", panel.badge)
}

func TestLoadPanelNewestTwenty(t *testing.T) {
	m := newMemNotifications()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		m.add(models.Notification{
			RecipientID: 9,
			Type:        models.NotificationPostLiked,
			ActorID:     uintPtr(2),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}
	m.actors[2] = models.User{Name: "Sari"}
	s, panel := newSync(m, 9)

	require.NoError(t, s.LoadPanel())

	require.Len(t, panel.lists, 1)
	items := panel.lists[0]
	require.Len(t, items, PanelLimit)
	// Newest first.
	assert.Equal(t, uint(25), items[0].ID)
	assert.Equal(t, "Sari liked your post", items[0].Message)
}

func TestLoadPanelBatchesActorLookup(t *testing.T) {
	m := newMemNotifications()
	m.actors[2] = models.User{Name: "Sari"}
	m.actors[3] = models.User{Name: "Tono"}
	m.add(models.Notification{RecipientID: 9, Type: models.NotificationPostLiked, ActorID: uintPtr(2)})
	m.add(models.Notification{RecipientID: 9, Type: models.NotificationPostReplied, ActorID: uintPtr(3)})
	m.add(models.Notification{RecipientID: 9, Type: models.NotificationCommentReplied, ActorID: uintPtr(2)})
	s, _ := newSync(m, 9)

	require.NoError(t, s.LoadPanel())

	assert.Equal(t, 1, m.actorCalls)
}

func TestLoadPanelEmpty(t *testing.T) {
	m := newMemNotifications()
	s, panel := newSync(m, 9)

	require.NoError(t, s.LoadPanel())

	assert.Equal(t, 1, panel.empty)
	assert.Empty(t, panel.lists)
	assert.Equal(t, 0, m.actorCalls)
}

func TestMessagePerType(t *testing.T) {
	actors := map[uint]models.User{2: {Name: "Sari"}}

	tests := []struct {
		name string
		n    models.Notification
		want string
	}{
		{"post liked", models.Notification{Type: models.NotificationPostLiked, ActorID: uintPtr(2)}, "Sari liked your post"},
		{"post replied", models.Notification{Type: models.NotificationPostReplied, ActorID: uintPtr(2)}, "Sari replied to your post"},
		{"comment replied", models.Notification{Type: models.NotificationCommentReplied, ActorID: uintPtr(2)}, "Sari replied to your comment"},
		{"broadcast", models.Notification{Type: models.NotificationAdminBroadcast, Content: "Retreat this Saturday"}, "Retreat this Saturday"},
		{"missing actor", models.Notification{Type: models.NotificationPostLiked, ActorID: uintPtr(77)}, "Someone liked your post"},
		{"nil actor", models.Notification{Type: models.NotificationPostLiked}, "Someone liked your post"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.n, actors))
		})
	}
}

func TestMessageEscapesActorName(t *testing.T) {
	actors := map[uint]models.User{2: {Name: "<b>Sari</b>"}}
	n := models.Notification{Type: models.NotificationPostLiked, ActorID: uintPtr(2)}

	assert.NotContains(t, Message(n, actors), "<b>")
}

func TestMarkReadRefreshesBadge(t *testing.T) {
	m := newMemNotifications()
	first := m.add(models.Notification{RecipientID: 9, Type: models.NotificationPostLiked})
	m.add(models.Notification{RecipientID: 9, Type: models.NotificationPostReplied})
	s, panel := newSync(m, 9)

	require.NoError(t, s.MarkRead(first.ID))

	assert.True(t, m.items[first.ID].IsRead)
	assert.Equal(t, "1", panel.badge)
}

func TestMarkAllRead(t *testing.T) {
	m := newMemNotifications()
	m.add(models.Notification{RecipientID: 9, Type: models.NotificationPostLiked})
	m.add(models.Notification{RecipientID: 9, Type: models.NotificationPostReplied, IsRead: true})
	s, panel := newSync(m, 9)

	require.NoError(t, s.LoadPanel())
	require.Len(t, panel.lists, 1)

	require.NoError(t, s.MarkAllRead())
	assert.True(t, panel.hidden)
	for _, n := range m.items {
		assert.True(t, n.IsRead)
	}

	// The panel re-renders so open rows lose their unread styling.
	require.Len(t, panel.lists, 2)
	for _, item := range panel.lists[1] {
		assert.True(t, item.IsRead)
	}

	// Idempotent.
	require.NoError(t, s.MarkAllRead())
	assert.True(t, panel.hidden)
	assert.Len(t, panel.lists, 3)
}

func TestMarkAllReadFailureKeepsBadge(t *testing.T) {
	m := newMemNotifications()
	m.add(models.Notification{RecipientID: 9, Type: models.NotificationPostLiked})
	s, panel := newSync(m, 9)
	require.NoError(t, s.UpdateBadge())

	m.failMark = errors.New("store down")
	assert.Error(t, s.MarkAllRead())

	assert.Equal(t, "1", panel.badge)
	assert.False(t, m.items[1].IsRead)
}
