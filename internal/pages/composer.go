package pages

import (
	"github.com/pacifora/sahabat-ktb/backend/internal/editor"
	"github.com/pacifora/sahabat-ktb/backend/internal/format"
)

// ComposerState is the reply form's lifecycle state.
type ComposerState int

const (
	ComposerHidden ComposerState = iota
	ComposerOpen
	ComposerSubmitting
)

func (s ComposerState) String() string {
	switch s {
	case ComposerOpen:
		return "open"
	case ComposerSubmitting:
		return "submitting"
	default:
		return "hidden"
	}
}

type composerRenderer interface {
	ShowAlert(title, message string)
}

// Composer drives one reply form, top-level or nested; the two are
// structurally identical. Hidden -> Open (trigger clicked, editor focused)
// -> Submitting (submit control disabled) -> Hidden on success with the
// editor cleared, or back to Open on failure with content preserved for
// retry. Cancel discards content.
type Composer struct {
	state    ComposerState
	editor   editor.Editor
	renderer composerRenderer

	// OnChange, when set, is invoked after every state transition so the
	// rendering layer can show/hide the form and relabel the submit control.
	OnChange func(ComposerState)
}

// NewComposer returns a hidden composer over the given editing surface.
func NewComposer(ed editor.Editor, renderer composerRenderer) *Composer {
	return &Composer{state: ComposerHidden, editor: ed, renderer: renderer}
}

// State returns the current lifecycle state.
func (c *Composer) State() ComposerState {
	return c.state
}

// Content exposes the editor content, preserved across failed submissions.
func (c *Composer) Content() string {
	return c.editor.GetContent()
}

// Open shows the form and focuses the editing surface. A no-op unless the
// composer is hidden.
func (c *Composer) Open() {
	if c.state != ComposerHidden {
		return
	}
	c.transition(ComposerOpen)
	c.editor.Focus()
}

// Cancel hides the form and discards its content.
func (c *Composer) Cancel() {
	if c.state != ComposerOpen {
		return
	}
	c.editor.SetContent("")
	c.transition(ComposerHidden)
}

// Submit runs the given submission with the editor's content. Empty
// content (including a lone "<br>") is rejected with an alert and no state
// change. On failure the composer returns to Open with content preserved.
func (c *Composer) Submit(submit func(content string) error) {
	if c.state != ComposerOpen {
		return
	}

	content := c.editor.GetContent()
	if format.EmptyContent(content) {
		c.renderer.ShowAlert("Empty Reply", "Please enter some content for your reply")
		return
	}

	c.transition(ComposerSubmitting)

	if err := submit(content); err != nil {
		c.transition(ComposerOpen)
		c.renderer.ShowAlert("Error", "Failed to submit reply. Please try again.")
		return
	}

	c.editor.SetContent("")
	c.transition(ComposerHidden)
}

func (c *Composer) transition(next ComposerState) {
	c.state = next
	if c.OnChange != nil {
		c.OnChange(next)
	}
}
