package users

import (
	"net/http"

	"cadrebook/api"
	"cadrebook/database"
	"cadrebook/state"
	"cadrebook/types"
	"cadrebook/uapi"

	docs "cadrebook/doclib"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type listFunc func(db *gorm.DB, username string, viewerID uint, skip, limit int) ([]types.UserSummary, error)

func ListFollowersDocs() *docs.Doc {
	return &docs.Doc{
		Summary:     "List Followers",
		Description: "Users following this user, most recent first.",
		Params:      append([]docs.Parameter{usernameParam()}, pageParams()...),
		Resp:        []types.UserSummary{},
		Errors:      []int{http.StatusNotFound},
	}
}

func ListFollowersRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	return listRoute(d, r, database.ListFollowers)
}

func ListFollowingDocs() *docs.Doc {
	return &docs.Doc{
		Summary:     "List Following",
		Description: "Users this user follows, most recent first.",
		Params:      append([]docs.Parameter{usernameParam()}, pageParams()...),
		Resp:        []types.UserSummary{},
		Errors:      []int{http.StatusNotFound},
	}
}

func ListFollowingRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	return listRoute(d, r, database.ListFollowing)
}

func listRoute(d uapi.RouteData, r *http.Request, list listFunc) uapi.HttpResponse {
	skip, hresp, ok := uapi.QueryInt(r, "skip", 0, 0, 1<<31-1)
	if !ok {
		return hresp
	}

	limit, hresp, ok := uapi.QueryInt(r, "limit", 20, 1, 100)
	if !ok {
		return hresp
	}

	users, err := list(state.Pool.WithContext(d.Context), chi.URLParam(r, "username"), d.Auth.ID, skip, limit)
	if err != nil {
		return api.ErrorResponse(err)
	}

	return uapi.HttpResponse{
		Json: users,
	}
}
