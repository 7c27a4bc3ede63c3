package auth

import (
	"cadrebook/uapi"

	"github.com/go-chi/chi/v5"
)

const tagName = "Auth"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "Account registration, login and the access tokens used by every other endpoint."
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/auth/register",
		OpId:    "register",
		Method:  uapi.POST,
		Docs:    RegisterDocs,
		Handler: RegisterRoute,
	}.Route(r)

	uapi.Route{
		Pattern: "/auth/login",
		OpId:    "login",
		Method:  uapi.POST,
		Docs:    LoginDocs,
		Handler: LoginRoute,
	}.Route(r)

	uapi.Route{
		Pattern: "/auth/me",
		OpId:    "getCurrentUser",
		Method:  uapi.GET,
		Docs:    MeDocs,
		Handler: MeRoute,
		Auth:    []uapi.AuthType{{Type: "user"}},
	}.Route(r)

	uapi.Route{
		Pattern: "/auth/logout",
		OpId:    "logout",
		Method:  uapi.POST,
		Docs:    LogoutDocs,
		Handler: LogoutRoute,
		Auth:    []uapi.AuthType{{Type: "user"}},
	}.Route(r)
}
