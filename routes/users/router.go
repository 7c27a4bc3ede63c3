package users

import (
	"cadrebook/uapi"

	"github.com/go-chi/chi/v5"
)

const tagName = "Users"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "Profiles, user search and the follow graph."
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern:      "/users/search",
		OpId:         "searchUsers",
		Method:       uapi.GET,
		Docs:         SearchUsersDocs,
		Handler:      SearchUsersRoute,
		Auth:         []uapi.AuthType{{Type: "user"}},
		AuthOptional: true,
	}.Route(r)

	uapi.Route{
		Pattern: "/users/me/profile",
		OpId:    "updateProfile",
		Method:  uapi.PUT,
		Docs:    UpdateProfileDocs,
		Handler: UpdateProfileRoute,
		Auth:    []uapi.AuthType{{Type: "user"}},
	}.Route(r)

	uapi.Route{
		Pattern:      "/users/{username}",
		OpId:         "getProfile",
		Method:       uapi.GET,
		Docs:         GetProfileDocs,
		Handler:      GetProfileRoute,
		Auth:         []uapi.AuthType{{Type: "user"}},
		AuthOptional: true,
	}.Route(r)

	uapi.Route{
		Pattern: "/users/{username}/follow",
		OpId:    "followUser",
		Method:  uapi.POST,
		Docs:    FollowDocs,
		Handler: FollowRoute,
		Auth:    []uapi.AuthType{{Type: "user"}},
	}.Route(r)

	uapi.Route{
		Pattern: "/users/{username}/follow",
		OpId:    "unfollowUser",
		Method:  uapi.DELETE,
		Docs:    UnfollowDocs,
		Handler: UnfollowRoute,
		Auth:    []uapi.AuthType{{Type: "user"}},
	}.Route(r)

	uapi.Route{
		Pattern:      "/users/{username}/followers",
		OpId:         "listFollowers",
		Method:       uapi.GET,
		Docs:         ListFollowersDocs,
		Handler:      ListFollowersRoute,
		Auth:         []uapi.AuthType{{Type: "user"}},
		AuthOptional: true,
	}.Route(r)

	uapi.Route{
		Pattern:      "/users/{username}/following",
		OpId:         "listFollowing",
		Method:       uapi.GET,
		Docs:         ListFollowingDocs,
		Handler:      ListFollowingRoute,
		Auth:         []uapi.AuthType{{Type: "user"}},
		AuthOptional: true,
	}.Route(r)
}
