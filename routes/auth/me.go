package auth

import (
	"net/http"

	"cadrebook/api"
	"cadrebook/database"
	"cadrebook/state"
	"cadrebook/types"
	"cadrebook/uapi"

	docs "cadrebook/doclib"
)

func MeDocs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Current User",
		Description: "Returns the account the access token belongs to.",
		Resp:        types.UserView{},
	}
}

func MeRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	view, err := database.GetCurrentUser(state.Pool.WithContext(d.Context), d.Auth.ID)
	if err != nil {
		return api.ErrorResponse(err)
	}

	return uapi.HttpResponse{
		Json: view,
	}
}
