package posts

import (
	docs "cadrebook/doclib"
)

func postIDParam() docs.Parameter {
	return docs.Parameter{
		Name:        "post_id",
		In:          "path",
		Description: "Post ID",
		Required:    true,
		Schema:      docs.IdSchema,
	}
}

func pageParams() []docs.Parameter {
	return []docs.Parameter{
		{
			Name:        "skip",
			In:          "query",
			Description: "Number of posts to skip (default 0)",
			Schema:      docs.IntSchema,
		},
		{
			Name:        "limit",
			In:          "query",
			Description: "Page size, 1 to 100 (default 20)",
			Schema:      docs.IntSchema,
		},
	}
}
