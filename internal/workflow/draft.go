package workflow

import (
	"github.com/Villa717/sf241--react--restapi/internal/remote"
)

// Mode is the active input mode.
type Mode int

const (
	ModeComposing Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeEditing:
		return "editing"
	default:
		return "composing"
	}
}

// Field names an editable draft field.
type Field int

const (
	FieldTitle Field = iota
	FieldBody
)

func (f Field) String() string {
	switch f {
	case FieldBody:
		return "body"
	default:
		return "title"
	}
}

// Draft is the single in-progress post. It is either a ComposeDraft or an
// EditDraft; no other implementations exist.
type Draft interface {
	Mode() Mode
	sealed()
}

// ComposeDraft is an unsaved new post.
type ComposeDraft struct {
	Title string
	Body  string
}

func (ComposeDraft) Mode() Mode { return ModeComposing }
func (ComposeDraft) sealed()    {}

// missing returns the first required field left empty. Whitespace counts
// as content.
func (d ComposeDraft) missing() (Field, bool) {
	if d.Title == "" {
		return FieldTitle, true
	}
	if d.Body == "" {
		return FieldBody, true
	}
	return 0, false
}

// EditDraft is a copy of an existing post being changed before commit.
type EditDraft struct {
	Post remote.Post
}

func (EditDraft) Mode() Mode { return ModeEditing }
func (EditDraft) sealed()    {}

// Values returns the title and body held by any draft.
func Values(d Draft) (title, body string) {
	switch d := d.(type) {
	case ComposeDraft:
		return d.Title, d.Body
	case EditDraft:
		return d.Post.Title, d.Post.Body
	}
	return "", ""
}

func withField(d Draft, field Field, value string) Draft {
	switch d := d.(type) {
	case ComposeDraft:
		if field == FieldBody {
			d.Body = value
		} else {
			d.Title = value
		}
		return d
	case EditDraft:
		if field == FieldBody {
			d.Post.Body = value
		} else {
			d.Post.Title = value
		}
		return d
	}
	return d
}
