package render

import (
	"html"
	"html/template"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/philly/medium-blog/internal/content"
	"github.com/philly/medium-blog/internal/posts/domain"
)

// ImageURLs resolves image references. *content.Client implements it.
type ImageURLs interface {
	URLFor(ref string) *content.ImageURL
}

// Node is one element of a rendered post body. Only the tags below are ever
// produced; anything else in the body is dropped while building the tree.
type Node struct {
	Tag      string // "" for a text node
	Text     string
	Href     string
	Src      string
	Alt      string
	Children []*Node
}

var blockTags = map[string]string{
	domain.StyleNormal:     "p",
	domain.StyleH1:         "h1",
	domain.StyleH2:         "h2",
	domain.StyleH3:         "h3",
	domain.StyleH4:         "h4",
	domain.StyleBlockquote: "blockquote",
}

var listTags = map[string]string{
	domain.ListBullet: "ul",
	domain.ListNumber: "ol",
}

var decoratorTags = map[string]string{
	"strong":         "strong",
	"em":             "em",
	"code":           "code",
	"underline":      "u",
	"strike-through": "s",
}

var linkSchemes = map[string]bool{"http": true, "https": true, "mailto": true}

// RichText turns post bodies into HTML through an allow-list.
type RichText struct {
	images ImageURLs
	policy *bluemonday.Policy

	// ImageWidth is the width requested for inline images.
	ImageWidth int
}

// NewRichText creates a renderer. images may be nil, in which case image
// blocks are dropped.
func NewRichText(images ImageURLs) *RichText {
	return &RichText{
		images:     images,
		policy:     bodyPolicy(),
		ImageWidth: 800,
	}
}

func bodyPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "h1", "h2", "h3", "h4", "blockquote", "ul", "ol", "li", "strong", "em", "code", "u", "s", "figure")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.RequireNoFollowOnLinks(true)
	return p
}

// Render builds the node tree for blocks and serializes it.
func (r *RichText) Render(blocks []domain.Block) template.HTML {
	var sb strings.Builder
	for _, n := range r.Nodes(blocks) {
		writeNode(&sb, n)
	}
	return template.HTML(r.policy.Sanitize(sb.String()))
}

// Nodes converts blocks into allow-listed nodes. Consecutive list items are
// grouped into lists; a deeper level nests inside the previous item.
func (r *RichText) Nodes(blocks []domain.Block) []*Node {
	var (
		out   []*Node
		lists []*Node // open lists, outermost first
		kinds []string
	)

	for _, b := range blocks {
		tag, ok := listTags[b.ListItem]
		if b.Type != domain.BlockTypeText || !ok {
			lists, kinds = nil, nil
			if n := r.blockNode(b); n != nil {
				out = append(out, n)
			}
			continue
		}

		level := b.Level
		if level < 1 {
			level = 1
		}
		for len(lists) > level {
			lists, kinds = lists[:len(lists)-1], kinds[:len(kinds)-1]
		}
		if len(lists) == level && kinds[level-1] != b.ListItem {
			lists, kinds = lists[:len(lists)-1], kinds[:len(kinds)-1]
		}
		for len(lists) < level {
			list := &Node{Tag: tag}
			if len(lists) == 0 {
				out = append(out, list)
			} else {
				parent := lists[len(lists)-1]
				if len(parent.Children) == 0 {
					parent.Children = append(parent.Children, &Node{Tag: "li"})
				}
				last := parent.Children[len(parent.Children)-1]
				last.Children = append(last.Children, list)
			}
			lists = append(lists, list)
			kinds = append(kinds, b.ListItem)
		}

		top := lists[len(lists)-1]
		top.Children = append(top.Children, &Node{Tag: "li", Children: r.spans(b)})
	}
	return out
}

func (r *RichText) blockNode(b domain.Block) *Node {
	switch b.Type {
	case domain.BlockTypeText:
		tag, ok := blockTags[b.Style]
		if !ok {
			tag = "p"
		}
		return &Node{Tag: tag, Children: r.spans(b)}
	case domain.BlockTypeImage:
		if r.images == nil || b.Image == "" {
			return nil
		}
		src := r.images.URLFor(string(b.Image)).Width(r.ImageWidth).AutoFormat().String()
		if src == "" {
			return nil
		}
		return &Node{Tag: "figure", Children: []*Node{{Tag: "img", Src: src, Alt: b.Alt}}}
	default:
		return nil
	}
}

// spans wraps each span's text in its marks, first mark outermost. Marks
// that are neither known decorators nor safe links are ignored.
func (r *RichText) spans(b domain.Block) []*Node {
	defs := make(map[string]domain.MarkDef, len(b.MarkDefs))
	for _, d := range b.MarkDefs {
		defs[d.Key] = d
	}

	nodes := make([]*Node, 0, len(b.Children))
	for _, s := range b.Children {
		n := &Node{Text: s.Text}
		for i := len(s.Marks) - 1; i >= 0; i-- {
			mark := s.Marks[i]
			if tag, ok := decoratorTags[mark]; ok {
				n = &Node{Tag: tag, Children: []*Node{n}}
				continue
			}
			if def, ok := defs[mark]; ok && def.Type == "link" && safeHref(def.Href) {
				n = &Node{Tag: "a", Href: def.Href, Children: []*Node{n}}
			}
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func safeHref(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return linkSchemes[strings.ToLower(u.Scheme)]
}

func writeNode(sb *strings.Builder, n *Node) {
	switch n.Tag {
	case "":
		sb.WriteString(html.EscapeString(n.Text))
		return
	case "img":
		sb.WriteString(`<img src="`)
		sb.WriteString(html.EscapeString(n.Src))
		sb.WriteString(`" alt="`)
		sb.WriteString(html.EscapeString(n.Alt))
		sb.WriteString(`">`)
		return
	case "a":
		sb.WriteString(`<a href="`)
		sb.WriteString(html.EscapeString(n.Href))
		sb.WriteString(`">`)
	default:
		sb.WriteString("<" + n.Tag + ">")
	}
	for _, c := range n.Children {
		writeNode(sb, c)
	}
	sb.WriteString("</" + n.Tag + ">")
}
