package domain

import "strings"

// Block types found in a post body.
const (
	BlockTypeText  = "block"
	BlockTypeImage = "image"
)

// Text block styles.
const (
	StyleNormal     = "normal"
	StyleH1         = "h1"
	StyleH2         = "h2"
	StyleH3         = "h3"
	StyleH4         = "h4"
	StyleBlockquote = "blockquote"
)

// List item kinds.
const (
	ListBullet = "bullet"
	ListNumber = "number"
)

// Block is one entry of a post body. Text blocks use Style, ListItem, Level,
// Children and MarkDefs; image blocks use Image and Alt. Types the renderer
// does not know are kept here and dropped at render time.
type Block struct {
	Key      string
	Type     string
	Style    string
	ListItem string
	Level    int
	Children []Span
	MarkDefs []MarkDef
	Image    ImageRef
	Alt      string
}

// Span is a run of text. Marks holds decorator names (strong, em, ...) or
// keys into the owning block's MarkDefs.
type Span struct {
	Text  string
	Marks []string
}

// MarkDef is an annotation referenced from span marks, e.g. a link.
type MarkDef struct {
	Key  string
	Type string
	Href string
}

// PlainText concatenates the block's span texts.
func (b Block) PlainText() string {
	var sb strings.Builder
	for _, s := range b.Children {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
