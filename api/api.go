package api

import (
	"errors"
	"net/http"
	"strings"

	"cadrebook/constants"
	"cadrebook/database"
	"cadrebook/state"
	"cadrebook/types"
	"cadrebook/uapi"

	"go.uber.org/zap"
)

type DefaultResponder struct{}

func (d DefaultResponder) New(err string, ctx map[string]string) any {
	return types.ApiError{
		Message: err,
		Context: ctx,
	}
}

func unauthorized() (uapi.AuthData, uapi.HttpResponse, bool) {
	return uapi.AuthData{}, uapi.DefaultResponse(http.StatusUnauthorized), false
}

// Authorizes a request
//
// Routes without Auth are public. Routes with AuthOptional accept a missing
// Authorization header as an anonymous caller, but a header that is present must
// still carry a valid token.
func Authorize(r uapi.Route, req *http.Request) (uapi.AuthData, uapi.HttpResponse, bool) {
	if len(r.Auth) == 0 {
		return uapi.AuthData{}, uapi.HttpResponse{}, true
	}

	header := req.Header.Get("Authorization")
	if header == "" {
		if r.AuthOptional {
			return uapi.AuthData{}, uapi.HttpResponse{}, true
		}

		return unauthorized()
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return unauthorized()
	}

	claims, err := state.Tokens.Parse(strings.TrimSpace(token))
	if err != nil {
		return unauthorized()
	}

	userID, err := claims.UserID()
	if err != nil {
		return unauthorized()
	}

	revoked, err := state.Revocations.IsRevoked(req.Context(), claims.ID)
	if err != nil {
		state.Logger.Error("[api/Authorize] Failed to check token revocation", zap.Error(err))
		return uapi.AuthData{}, uapi.DefaultResponse(http.StatusInternalServerError), false
	}

	if revoked {
		return unauthorized()
	}

	exists, err := database.UserExists(state.Pool.WithContext(req.Context()), userID)
	if err != nil {
		state.Logger.Error("[api/Authorize] Failed to look up token subject", zap.Error(err))
		return uapi.AuthData{}, uapi.DefaultResponse(http.StatusInternalServerError), false
	}

	if !exists {
		return unauthorized()
	}

	data := uapi.AuthData{
		ID:         userID,
		Authorized: true,
		TokenID:    claims.ID,
	}

	if claims.ExpiresAt != nil {
		data.ExpiresAt = claims.ExpiresAt.Time
	}

	return data, uapi.HttpResponse{}, true
}

// ErrorResponse renders an error returned by the database package. Errors outside the
// taxonomy are logged and become a 500.
func ErrorResponse(err error) uapi.HttpResponse {
	var dbErr *database.Error
	if errors.As(err, &dbErr) {
		var status int
		switch dbErr.Kind {
		case database.KindNotFound:
			status = http.StatusNotFound
		case database.KindConflict:
			status = http.StatusConflict
		case database.KindUnauthorized, database.KindInvalidCredentials:
			status = http.StatusUnauthorized
		case database.KindForbidden:
			status = http.StatusForbidden
		default:
			status = http.StatusInternalServerError
		}

		return uapi.HttpResponse{
			Status: status,
			Json: types.ApiError{
				Message: dbErr.Message,
				Context: map[string]string{"kind": dbErr.Kind.String()},
			},
		}
	}

	state.Logger.Error("[api/ErrorResponse] Unhandled error", zap.Error(err))
	return uapi.DefaultResponse(http.StatusInternalServerError)
}

func Setup() {
	uapi.SetupState(uapi.UAPIState{
		Logger:    state.Logger,
		Authorize: Authorize,
		AuthTypeMap: map[string]string{
			"user": "BearerAuth",
		},
		Context: state.Context,
		Constants: &uapi.UAPIConstants{
			ResourceNotFound:    constants.ResourceNotFound,
			BadRequest:          constants.BadRequest,
			Forbidden:           constants.Forbidden,
			Unauthorized:        constants.Unauthorized,
			InternalServerError: constants.InternalServerError,
			MethodNotAllowed:    constants.MethodNotAllowed,
			BodyRequired:        constants.BodyRequired,
		},
		DefaultResponder: DefaultResponder{},
		BaseSanityCheck: func(r uapi.Route) error {
			if r.Method != uapi.GET && r.Method != uapi.HEAD && len(r.Auth) == 0 && !strings.HasPrefix(r.Pattern, "/auth/") {
				return errors.New("mutating route without auth: " + r.String())
			}

			return nil
		},
	})
}
