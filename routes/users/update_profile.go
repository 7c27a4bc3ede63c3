package users

import (
	"errors"
	"net/http"

	"cadrebook/api"
	"cadrebook/database"
	"cadrebook/state"
	"cadrebook/types"
	"cadrebook/uapi"

	docs "cadrebook/doclib"

	"github.com/go-playground/validator/v10"
)

var compiledProfileMessages = uapi.CompileValidationErrors(types.ProfileFields{})

func UpdateProfileDocs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Update Profile",
		Description: "Updates only the fields present in the body. A field sent as null or an empty string is cleared.",
		Req:         types.ProfileUpdate{},
		Resp:        types.ProfileView{},
	}
}

func UpdateProfileRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	var payload types.ProfileUpdate

	hresp, ok := uapi.MarshalReq(r, &payload)
	if !ok {
		return hresp
	}

	if err := state.Validator.Struct(payload.Fields()); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			return uapi.ValidatorErrorResponse(compiledProfileMessages, verr)
		}

		return uapi.DefaultResponse(http.StatusBadRequest)
	}

	view, err := database.UpdateProfile(state.Pool.WithContext(d.Context), d.Auth.ID, payload)
	if err != nil {
		return api.ErrorResponse(err)
	}

	return uapi.HttpResponse{
		Json: view,
	}
}
