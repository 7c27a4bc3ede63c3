package users

import (
	"net/http"

	"cadrebook/api"
	"cadrebook/database"
	"cadrebook/state"
	"cadrebook/types"
	"cadrebook/uapi"

	docs "cadrebook/doclib"
)

func SearchUsersDocs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Search Users",
		Description: "Case-insensitive substring match on username and display name, ordered by username. The caller is left out of the results. A blank query returns nothing.",
		Params: []docs.Parameter{
			{
				Name:        "q",
				In:          "query",
				Description: "Search text",
				Schema:      docs.StringSchema,
			},
			{
				Name:        "limit",
				In:          "query",
				Description: "Maximum results, 1 to 50 (default 20)",
				Schema:      docs.IntSchema,
			},
		},
		Resp: []types.UserSummary{},
	}
}

func SearchUsersRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	limit, hresp, ok := uapi.QueryInt(r, "limit", 20, 1, 50)
	if !ok {
		return hresp
	}

	results, err := database.SearchUsers(state.Pool.WithContext(d.Context), r.URL.Query().Get("q"), d.Auth.ID, limit)
	if err != nil {
		return api.ErrorResponse(err)
	}

	return uapi.HttpResponse{
		Json: results,
	}
}
