// Package pages holds the page controllers: the post detail interaction
// controller, the feed and saved-posts listings, the optimistic toggle
// helper and the reply composers. Controllers are page-scoped: constructed
// at page load with an explicit session and discarded on navigation.
package pages

// SubjectKind distinguishes what a toggle subject refers to.
type SubjectKind string

const (
	SubjectPost  SubjectKind = "post"
	SubjectReply SubjectKind = "reply"
)

// Subject identifies one likeable/saveable entity on the page.
type Subject struct {
	Kind SubjectKind
	ID   uint
}

func PostSubject(id uint) Subject  { return Subject{Kind: SubjectPost, ID: id} }
func ReplySubject(id uint) Subject { return Subject{Kind: SubjectReply, ID: id} }

// ToggleState is the per-subject record the toggle helper reads and writes.
// It, not the rendered markup, decides toggle direction.
type ToggleState struct {
	Liked bool
	Saved bool
	Likes int
}

// ViewState is the page-scoped store of toggle records. Handlers run to
// completion between awaits on a single goroutine, so no locking is needed.
type ViewState struct {
	records map[Subject]ToggleState
}

// NewViewState returns an empty page store.
func NewViewState() *ViewState {
	return &ViewState{records: make(map[Subject]ToggleState)}
}

// Put records the state for a subject, replacing any previous record.
func (v *ViewState) Put(s Subject, st ToggleState) {
	v.records[s] = st
}

// Get returns the recorded state for a subject, or a zero state for an
// unknown one.
func (v *ViewState) Get(s Subject) ToggleState {
	return v.records[s]
}
