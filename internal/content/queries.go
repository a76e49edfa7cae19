package content

// The three queries the front-end needs. Field selections are part of the
// contract: decoders downstream validate exactly these shapes.
var (
	ListPostSummaries = Query{
		Name: "list-post-summaries",
		Text: `*[_type == "post"]{
  _id,
  title,
  slug,
  author -> { name, image },
  mainImage,
  description
}`,
	}

	ListPostSlugs = Query{
		Name: "list-post-slugs",
		Text: `*[_type == "post"]{
  _id,
  slug { current }
}`,
	}

	// PostBySlug takes $slug. Comment email addresses are not projected.
	PostBySlug = Query{
		Name: "post-by-slug",
		Text: `*[_type == "post" && slug.current == $slug][0]{
  _id,
  _createdAt,
  title,
  description,
  body,
  slug,
  mainImage,
  author -> { name, image },
  "comments": *[_type == "comment" && post._ref == ^._id && approved == true]{
    _id,
    _createdAt,
    name,
    comment,
    approved,
    post
  }
}`,
	}
)

// CommentType is the _type of reader comments.
const CommentType = "comment"
