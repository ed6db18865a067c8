package pages

import (
	"errors"
	"sort"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
)

// memStore is the shared backing state for the in-memory repository fakes.
// Every fail hook defaults to nil; tests set them to force failures.
type memStore struct {
	posts    map[uint]*models.Post
	replies  map[uint]*models.Reply
	nextID   uint
	likes    map[[2]uint]bool // {postID, userID}
	rLikes   map[[2]uint]bool // {replyID, userID}
	saves    map[[2]uint]bool // {userID, postID}
	saveSeq  []uint           // postIDs in save order
	profiles map[uint]models.UserProfile

	failLike        error // post/reply like membership calls
	failCounter     error // post/reply counter calls
	failSave        error // SavePost / UnsavePost
	failReply       error // CreateReply
	failDelete      error // DeletePost / DeleteReply
	failGetPost     error // GetPostByID / GetAllPosts
	failListReplies error // GetRepliesByPostID
}

func newMemStore() *memStore {
	return &memStore{
		posts:    make(map[uint]*models.Post),
		replies:  make(map[uint]*models.Reply),
		nextID:   1,
		likes:    make(map[[2]uint]bool),
		rLikes:   make(map[[2]uint]bool),
		saves:    make(map[[2]uint]bool),
		profiles: make(map[uint]models.UserProfile),
	}
}

func (s *memStore) id() uint {
	id := s.nextID
	s.nextID++
	return id
}

func (s *memStore) addPost(p models.Post) *models.Post {
	if p.ID == 0 {
		p.ID = s.id()
	}
	s.posts[p.ID] = &p
	return &p
}

func (s *memStore) addReply(r models.Reply) *models.Reply {
	if r.ID == 0 {
		r.ID = s.id()
	}
	s.replies[r.ID] = &r
	return &r
}

type memPosts struct{ s *memStore }

func (m memPosts) CreatePost(post *models.Post) error {
	if post.ID == 0 {
		post.ID = m.s.id()
	}
	m.s.posts[post.ID] = post
	return nil
}

func (m memPosts) GetPostByID(id uint) (*models.Post, error) {
	if m.s.failGetPost != nil {
		return nil, m.s.failGetPost
	}
	p, ok := m.s.posts[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *p
	return &cp, nil
}

func (m memPosts) GetAllPosts() ([]models.Post, error) {
	if m.s.failGetPost != nil {
		return nil, m.s.failGetPost
	}
	out := make([]models.Post, 0, len(m.s.posts))
	for _, p := range m.s.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m memPosts) GetPostsByUserID(userID uint) ([]models.Post, error) {
	var out []models.Post
	for _, p := range m.s.posts {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m memPosts) GetPostsByIDs(ids []uint) ([]models.Post, error) {
	var out []models.Post
	for _, id := range ids {
		if p, ok := m.s.posts[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m memPosts) UpdatePost(post *models.Post) error {
	m.s.posts[post.ID] = post
	return nil
}

func (m memPosts) DeletePost(id uint) error {
	if m.s.failDelete != nil {
		return m.s.failDelete
	}
	delete(m.s.posts, id)
	return nil
}

func (m memPosts) IncrementLikes(postID uint) error {
	if m.s.failCounter != nil {
		return m.s.failCounter
	}
	if p, ok := m.s.posts[postID]; ok {
		p.Likes++
	}
	return nil
}

func (m memPosts) DecrementLikes(postID uint) error {
	if m.s.failCounter != nil {
		return m.s.failCounter
	}
	if p, ok := m.s.posts[postID]; ok && p.Likes > 0 {
		p.Likes--
	}
	return nil
}

type memReplies struct{ s *memStore }

func (m memReplies) CreateReply(reply *models.Reply) error {
	if m.s.failReply != nil {
		return m.s.failReply
	}
	if reply.ID == 0 {
		reply.ID = m.s.id()
	}
	m.s.replies[reply.ID] = reply
	return nil
}

func (m memReplies) GetReplyByID(id uint) (*models.Reply, error) {
	r, ok := m.s.replies[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *r
	return &cp, nil
}

func (m memReplies) GetRepliesByPostID(postID uint) ([]models.Reply, error) {
	if m.s.failListReplies != nil {
		return nil, m.s.failListReplies
	}
	var out []models.Reply
	for _, r := range m.s.replies {
		if r.PostID == postID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m memReplies) GetRepliesByUserID(userID uint) ([]models.Reply, error) {
	var out []models.Reply
	for _, r := range m.s.replies {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m memReplies) GetReplyCounts(postIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int)
	for _, r := range m.s.replies {
		counts[r.PostID]++
	}
	out := make(map[uint]int)
	for _, id := range postIDs {
		if n := counts[id]; n > 0 {
			out[id] = n
		}
	}
	return out, nil
}

func (m memReplies) DeleteReply(id uint) error {
	if m.s.failDelete != nil {
		return m.s.failDelete
	}
	delete(m.s.replies, id)
	return nil
}

func (m memReplies) IncrementLikes(replyID uint) error {
	if m.s.failCounter != nil {
		return m.s.failCounter
	}
	if r, ok := m.s.replies[replyID]; ok {
		r.Likes++
	}
	return nil
}

func (m memReplies) DecrementLikes(replyID uint) error {
	if m.s.failCounter != nil {
		return m.s.failCounter
	}
	if r, ok := m.s.replies[replyID]; ok && r.Likes > 0 {
		r.Likes--
	}
	return nil
}

type memPostLikes struct{ s *memStore }

func (m memPostLikes) CreateLike(like *models.PostLike) error {
	if m.s.failLike != nil {
		return m.s.failLike
	}
	m.s.likes[[2]uint{like.PostID, like.UserID}] = true
	return nil
}

func (m memPostLikes) DeleteLike(postID, userID uint) error {
	if m.s.failLike != nil {
		return m.s.failLike
	}
	key := [2]uint{postID, userID}
	if !m.s.likes[key] {
		return errors.New("like not found")
	}
	delete(m.s.likes, key)
	return nil
}

func (m memPostLikes) HasUserLikedPost(postID, userID uint) (bool, error) {
	return m.s.likes[[2]uint{postID, userID}], nil
}

func (m memPostLikes) GetLikedPostIDs(userID uint) ([]uint, error) {
	var out []uint
	for key := range m.s.likes {
		if key[1] == userID {
			out = append(out, key[0])
		}
	}
	return out, nil
}

func (m memPostLikes) CountByPostID(postID uint) (int64, error) {
	var n int64
	for key := range m.s.likes {
		if key[0] == postID {
			n++
		}
	}
	return n, nil
}

type memReplyLikes struct{ s *memStore }

func (m memReplyLikes) CreateLike(like *models.ReplyLike) error {
	if m.s.failLike != nil {
		return m.s.failLike
	}
	m.s.rLikes[[2]uint{like.ReplyID, like.UserID}] = true
	return nil
}

func (m memReplyLikes) DeleteLike(replyID, userID uint) error {
	if m.s.failLike != nil {
		return m.s.failLike
	}
	key := [2]uint{replyID, userID}
	if !m.s.rLikes[key] {
		return errors.New("like not found")
	}
	delete(m.s.rLikes, key)
	return nil
}

func (m memReplyLikes) GetLikedReplyIDs(userID uint) ([]uint, error) {
	var out []uint
	for key := range m.s.rLikes {
		if key[1] == userID {
			out = append(out, key[0])
		}
	}
	return out, nil
}

type memSaves struct{ s *memStore }

func (m memSaves) SavePost(sp *models.SavedPost) error {
	if m.s.failSave != nil {
		return m.s.failSave
	}
	m.s.saves[[2]uint{sp.UserID, sp.PostID}] = true
	m.s.saveSeq = append(m.s.saveSeq, sp.PostID)
	return nil
}

func (m memSaves) UnsavePost(userID, postID uint) error {
	if m.s.failSave != nil {
		return m.s.failSave
	}
	key := [2]uint{userID, postID}
	if !m.s.saves[key] {
		return errors.New("saved post not found")
	}
	delete(m.s.saves, key)
	return nil
}

func (m memSaves) IsPostSaved(userID, postID uint) (bool, error) {
	return m.s.saves[[2]uint{userID, postID}], nil
}

func (m memSaves) GetSavedPostIDs(userID uint) ([]uint, error) {
	var out []uint
	for i := len(m.s.saveSeq) - 1; i >= 0; i-- {
		id := m.s.saveSeq[i]
		if m.s.saves[[2]uint{userID, id}] {
			out = append(out, id)
		}
	}
	return out, nil
}

type memProfiles struct{ s *memStore }

func (m memProfiles) UpsertProfile(profile *models.UserProfile) error {
	m.s.profiles[profile.UserID] = *profile
	return nil
}

func (m memProfiles) TouchLastSignIn(userID uint) error { return nil }

func (m memProfiles) GetByUserID(userID uint) (*models.UserProfile, error) {
	p, ok := m.s.profiles[userID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return &p, nil
}

func (m memProfiles) GetByUserIDs(userIDs []uint) (map[uint]models.UserProfile, error) {
	out := make(map[uint]models.UserProfile)
	for _, id := range userIDs {
		if p, ok := m.s.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m memProfiles) GetAllProfiles() ([]models.UserProfile, error) {
	var out []models.UserProfile
	for _, p := range m.s.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (m memProfiles) DeleteByUserID(userID uint) error {
	delete(m.s.profiles, userID)
	return nil
}

// fakeRenderer records everything the controllers push at it. It satisfies
// both Renderer and FeedRenderer.
type fakeRenderer struct {
	post       *PostView
	thread     *ThreadView
	feeds      [][]PostCardView
	hasMore    bool
	toggles    []toggleCall
	alerts     []string
	empty      []string
	confirms   []string
	confirmAns bool
	navigated  string
}

type toggleCall struct {
	subject Subject
	state   ToggleState
}

func (f *fakeRenderer) RenderPost(view PostView)     { f.post = &view }
func (f *fakeRenderer) RenderThread(view ThreadView) { f.thread = &view }
func (f *fakeRenderer) RenderFeed(cards []PostCardView, hasMore bool) {
	f.feeds = append(f.feeds, cards)
	f.hasMore = hasMore
}
func (f *fakeRenderer) RenderToggle(subject Subject, state ToggleState) {
	f.toggles = append(f.toggles, toggleCall{subject, state})
}
func (f *fakeRenderer) RenderEmptyState(title, message string) { f.empty = append(f.empty, title) }
func (f *fakeRenderer) ShowAlert(title, message string) {
	f.alerts = append(f.alerts, title+": "+message)
}
func (f *fakeRenderer) Confirm(title, message string) bool {
	f.confirms = append(f.confirms, title)
	return f.confirmAns
}
func (f *fakeRenderer) Navigate(target string) { f.navigated = target }

func (f *fakeRenderer) lastToggle() toggleCall {
	return f.toggles[len(f.toggles)-1]
}

func (f *fakeRenderer) lastFeed() []PostCardView {
	return f.feeds[len(f.feeds)-1]
}
