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
)

func GetProfileDocs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get Profile",
		Description: "Returns a public profile. is_following is always false for anonymous callers.",
		Params:      []docs.Parameter{usernameParam()},
		Resp:        types.ProfileView{},
		Errors:      []int{http.StatusNotFound},
	}
}

func GetProfileRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	view, err := database.GetProfile(state.Pool.WithContext(d.Context), chi.URLParam(r, "username"), d.Auth.ID)
	if err != nil {
		return api.ErrorResponse(err)
	}

	return uapi.HttpResponse{
		Json: view,
	}
}
