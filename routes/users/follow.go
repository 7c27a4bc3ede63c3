package users

import (
	"net/http"

	"cadrebook/api"
	"cadrebook/database"
	"cadrebook/monitoring"
	"cadrebook/state"
	"cadrebook/types"
	"cadrebook/uapi"

	docs "cadrebook/doclib"

	"github.com/go-chi/chi/v5"
)

func FollowDocs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Follow User",
		Description: "Follows a user. Following someone you already follow changes nothing. The counts in the response are the caller's following_count and the target's followers_count.",
		Params:      []docs.Parameter{usernameParam()},
		Resp:        types.FollowView{},
		Errors:      []int{http.StatusNotFound, http.StatusForbidden},
	}
}

func FollowRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	view, err := database.Follow(state.Pool.WithContext(d.Context), d.Auth.ID, chi.URLParam(r, "username"))
	if err != nil {
		return api.ErrorResponse(err)
	}

	monitoring.FollowChanges.WithLabelValues("follow").Inc()

	return uapi.HttpResponse{
		Json: view,
	}
}

func UnfollowDocs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Unfollow User",
		Description: "Stops following a user. Unfollowing someone you do not follow changes nothing.",
		Params:      []docs.Parameter{usernameParam()},
		Resp:        types.FollowView{},
		Errors:      []int{http.StatusNotFound, http.StatusForbidden},
	}
}

func UnfollowRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	view, err := database.Unfollow(state.Pool.WithContext(d.Context), d.Auth.ID, chi.URLParam(r, "username"))
	if err != nil {
		return api.ErrorResponse(err)
	}

	monitoring.FollowChanges.WithLabelValues("unfollow").Inc()

	return uapi.HttpResponse{
		Json: view,
	}
}
