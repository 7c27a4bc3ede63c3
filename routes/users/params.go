package users

import (
	docs "cadrebook/doclib"
)

func usernameParam() docs.Parameter {
	return docs.Parameter{
		Name:        "username",
		In:          "path",
		Description: "Username, matched case-insensitively",
		Required:    true,
		Schema:      docs.StringSchema,
	}
}

func pageParams() []docs.Parameter {
	return []docs.Parameter{
		{
			Name:        "skip",
			In:          "query",
			Description: "Number of entries to skip (default 0)",
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
