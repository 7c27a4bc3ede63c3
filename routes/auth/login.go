package auth

import (
	"errors"
	"net/http"

	"cadrebook/api"
	"cadrebook/database"
	"cadrebook/monitoring"
	"cadrebook/state"
	"cadrebook/types"
	"cadrebook/uapi"

	docs "cadrebook/doclib"

	"github.com/go-playground/validator/v10"
)

var compiledLoginMessages = uapi.CompileValidationErrors(types.LoginRequest{})

func LoginDocs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Login",
		Description: "Exchanges a username and password for an access token. An unknown username and a wrong password get the same answer.",
		Req:         types.LoginRequest{},
		Resp:        types.AuthView{},
		Errors:      []int{http.StatusUnauthorized},
	}
}

func LoginRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	var payload types.LoginRequest

	hresp, ok := uapi.MarshalReq(r, &payload)
	if !ok {
		monitoring.LoginFailure.WithLabelValues("bad_request").Inc()
		return hresp
	}

	if err := state.Validator.Struct(payload); err != nil {
		monitoring.LoginFailure.WithLabelValues("bad_request").Inc()

		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			return uapi.ValidatorErrorResponse(compiledLoginMessages, verr)
		}

		return uapi.DefaultResponse(http.StatusBadRequest)
	}

	view, err := database.Login(state.Pool.WithContext(d.Context), state.Passwords, state.Tokens, payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, database.ErrInvalidCredentials) {
			monitoring.LoginFailure.WithLabelValues("invalid_credentials").Inc()
		}

		return api.ErrorResponse(err)
	}

	monitoring.LoginSuccess.Inc()

	return uapi.HttpResponse{
		Json: view,
	}
}
