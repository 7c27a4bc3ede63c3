package comments

import (
	"cadrebook/uapi"

	"github.com/go-chi/chi/v5"
)

type Router struct{}

func (b Router) Tag() (string, string) {
	return "Comments", "Managing individual comments. Listing and creating them lives under Posts."
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/comments/{comment_id}",
		OpId:    "deleteComment",
		Method:  uapi.DELETE,
		Docs:    DeleteCommentDocs,
		Handler: DeleteCommentRoute,
		Auth:    []uapi.AuthType{{Type: "user"}},
	}.Route(r)
}
