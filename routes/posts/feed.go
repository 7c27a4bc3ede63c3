package posts

import (
	"net/http"

	"cadrebook/api"
	"cadrebook/database"
	"cadrebook/state"
	"cadrebook/types"
	"cadrebook/uapi"

	docs "cadrebook/doclib"

	"github.com/go-chi/chi/v5"
)

func page(r *http.Request) (skip, limit int, hresp uapi.HttpResponse, ok bool) {
	skip, hresp, ok = uapi.QueryInt(r, "skip", 0, 0, 1<<31-1)
	if !ok {
		return
	}

	limit, hresp, ok = uapi.QueryInt(r, "limit", 20, 1, 100)
	return
}

func GetFeedDocs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get Feed",
		Description: "All posts newest first. With following=true only posts by users the caller follows are returned, which needs a token.",
		Params: append(pageParams(), docs.Parameter{
			Name:        "following",
			In:          "query",
			Description: "Only include authors the caller follows",
			Schema:      docs.BoolSchema,
		}),
		Resp: []types.PostView{},
	}
}

func GetFeedRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	skip, limit, hresp, ok := page(r)
	if !ok {
		return hresp
	}

	following, hresp, ok := uapi.QueryBool(r, "following")
	if !ok {
		return hresp
	}

	posts, err := database.GetFeed(state.Pool.WithContext(d.Context), d.Auth.ID, database.FeedOptions{
		Skip:      skip,
		Limit:     limit,
		Following: following,
	})
	if err != nil {
		return api.ErrorResponse(err)
	}

	return uapi.HttpResponse{
		Json: posts,
	}
}

func GetUserPostsDocs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get User Posts",
		Description: "One user's posts newest first.",
		Params: append([]docs.Parameter{{
			Name:        "username",
			In:          "path",
			Description: "Username, matched case-insensitively",
			Required:    true,
			Schema:      docs.StringSchema,
		}}, pageParams()...),
		Resp:   []types.PostView{},
		Errors: []int{http.StatusNotFound},
	}
}

func GetUserPostsRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	skip, limit, hresp, ok := page(r)
	if !ok {
		return hresp
	}

	posts, err := database.GetUserPosts(state.Pool.WithContext(d.Context), chi.URLParam(r, "username"), d.Auth.ID, skip, limit)
	if err != nil {
		return api.ErrorResponse(err)
	}

	return uapi.HttpResponse{
		Json: posts,
	}
}
