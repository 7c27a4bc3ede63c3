package auth

import (
	"net/http"

	"cadrebook/state"
	"cadrebook/uapi"

	docs "cadrebook/doclib"

	"go.uber.org/zap"
)

func LogoutDocs() *docs.Doc {
	return &docs.Doc{
		Summary:       "Logout",
		Description:   "Revokes the access token used for this request. Other tokens of the same account stay valid.",
		SuccessStatus: http.StatusNoContent,
	}
}

func LogoutRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	err := state.Revocations.Revoke(d.Context, d.Auth.TokenID, d.Auth.ExpiresAt)
	if err != nil {
		state.Logger.Error("Failed to revoke token", zap.Error(err), zap.Uint("userId", d.Auth.ID))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.DefaultResponse(http.StatusNoContent)
}
