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

var compiledRegisterMessages = uapi.CompileValidationErrors(types.RegisterRequest{})

func RegisterDocs() *docs.Doc {
	return &docs.Doc{
		Summary:       "Register",
		Description:   "Creates an account and returns an access token for it. Usernames and emails are stored lowercased and must be unique.",
		Req:           types.RegisterRequest{},
		Resp:          types.AuthView{},
		SuccessStatus: http.StatusCreated,
		Errors:        []int{http.StatusConflict},
	}
}

func RegisterRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	var payload types.RegisterRequest

	hresp, ok := uapi.MarshalReq(r, &payload)
	if !ok {
		return hresp
	}

	payload.Normalize()

	if err := state.Validator.Struct(payload); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			return uapi.ValidatorErrorResponse(compiledRegisterMessages, verr)
		}

		return uapi.DefaultResponse(http.StatusBadRequest)
	}

	view, err := database.Register(state.Pool.WithContext(d.Context), state.Passwords, state.Tokens, payload)
	if err != nil {
		return api.ErrorResponse(err)
	}

	monitoring.RegisterSuccess.Inc()

	return uapi.HttpResponse{
		Status: http.StatusCreated,
		Json:   view,
	}
}
