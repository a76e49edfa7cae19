package seeder

import (
	"context"
	"encoding/json"
	"time"

	"github.com/philly/medium-blog/internal/content/records"
	"github.com/philly/medium-blog/internal/platform/validator"
)

// Demo seeds a handful of posts, authors and comments for local development.
// Post slugs are derived from their titles.
type Demo struct{}

func (Demo) Name() string { return "demo-content" }

func (Demo) Seed(ctx context.Context, target Target) error {
	for _, a := range demoAuthors {
		if err := target.UpsertAuthor(ctx, a); err != nil {
			return err
		}
	}
	for _, p := range demoPosts {
		if p.Slug == "" {
			p.Slug = validator.GenerateSlug(p.Title)
		}
		if err := target.UpsertPost(ctx, p); err != nil {
			return err
		}
	}
	for _, c := range demoComments {
		if err := target.UpsertComment(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

var demoAuthors = []records.Author{
	{ID: "author-ada", Name: "Ada Byron", Image: "image-AdaPortrait01-400x400-jpg"},
	{ID: "author-grace", Name: "Grace Hopper", Image: "image-GracePortrait02-400x400-png"},
}

var demoPosts = []records.Post{
	{
		ID:          "post-welcome",
		Title:       "Welcome to the blog",
		Description: "What this place is about and what comes next.",
		MainImage:   "image-WelcomeBanner01-1600x900-jpg",
		AuthorID:    "author-ada",
		CreatedAt:   time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Body: json.RawMessage(`[
  {"_type":"block","_key":"b1","style":"h1","markDefs":[],"children":[{"_type":"span","text":"Hello, reader","marks":[]}]},
  {"_type":"block","_key":"b2","style":"normal","markDefs":[{"_key":"l1","_type":"link","href":"https://go.dev"}],
   "children":[{"_type":"span","text":"This blog is served by ","marks":[]},{"_type":"span","text":"Go","marks":["l1","strong"]},{"_type":"span","text":".","marks":[]}]},
  {"_type":"block","_key":"b3","style":"normal","listItem":"bullet","level":1,"markDefs":[],"children":[{"_type":"span","text":"Fast pages","marks":[]}]},
  {"_type":"block","_key":"b4","style":"normal","listItem":"bullet","level":1,"markDefs":[],"children":[{"_type":"span","text":"Moderated comments","marks":["em"]}]}
]`),
	},
	{
		ID:          "post-compilers",
		Title:       "Notes on compilers",
		Description: "A short tour through lexing, parsing and code generation.",
		MainImage:   "image-CompilerDiagram02-1200x800-png",
		AuthorID:    "author-grace",
		CreatedAt:   time.Date(2024, 3, 8, 14, 30, 0, 0, time.UTC),
		Body: json.RawMessage(`[
  {"_type":"block","_key":"c1","style":"h2","markDefs":[],"children":[{"_type":"span","text":"Why compilers","marks":[]}]},
  {"_type":"block","_key":"c2","style":"blockquote","markDefs":[],"children":[{"_type":"span","text":"It is easier to ask forgiveness than it is to get permission.","marks":[]}]},
  {"_type":"block","_key":"c3","style":"normal","listItem":"number","level":1,"markDefs":[],"children":[{"_type":"span","text":"Lexing","marks":["code"]}]},
  {"_type":"block","_key":"c4","style":"normal","listItem":"number","level":1,"markDefs":[],"children":[{"_type":"span","text":"Parsing","marks":["code"]}]}
]`),
	},
}

var demoComments = []records.Comment{
	{
		ID:        "comment-1",
		PostID:    "post-welcome",
		Name:      "Linus",
		Email:     "linus@example.test",
		Comment:   "Looking forward to it!",
		Approved:  true,
		CreatedAt: time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC),
	},
	{
		ID:        "comment-2",
		PostID:    "post-welcome",
		Name:      "Spammer",
		Email:     "spam@example.test",
		Comment:   "Buy now",
		Approved:  false,
		CreatedAt: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
	},
}
