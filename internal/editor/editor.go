// Package editor abstracts the rich-text editing surface the composers
// write through. The page controllers depend only on this capability set,
// so any platform can supply its own widget.
package editor

import (
	"fmt"
	"strings"
)

// Editor is the opaque rich-text surface. Content is an HTML fragment.
type Editor interface {
	GetContent() string
	SetContent(html string)
	InsertLink(url, text string)
	InsertImage(url string)
	Focus()
}

// Buffer is an in-memory Editor used by the composers' tests and any
// headless rendering path. Insertions append to the buffer the way the
// editing surface appends at the cursor.
type Buffer struct {
	content strings.Builder
	focused bool
}

// NewBuffer returns an empty Buffer editor.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) GetContent() string {
	return b.content.String()
}

func (b *Buffer) SetContent(html string) {
	b.content.Reset()
	b.content.WriteString(html)
}

// InsertLink appends an anchor. With no text the URL doubles as the label,
// followed by a space, matching the editing surface's behavior.
func (b *Buffer) InsertLink(url, text string) {
	if text == "" {
		text = url
	}
	fmt.Fprintf(&b.content, `<a href="%s" target="_blank" rel="noopener noreferrer">%s</a> `, url, text)
}

func (b *Buffer) InsertImage(url string) {
	fmt.Fprintf(&b.content, `<img src="%s">`, url)
}

func (b *Buffer) Focus() {
	b.focused = true
}

// Focused reports whether Focus was called, for tests.
func (b *Buffer) Focused() bool {
	return b.focused
}
