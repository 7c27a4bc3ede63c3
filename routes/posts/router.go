package posts

import (
	"cadrebook/uapi"

	"github.com/go-chi/chi/v5"
)

const tagName = "Posts"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "Posts, the feed, likes and the comments under each post."
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern:      "/posts/feed",
		OpId:         "getFeed",
		Method:       uapi.GET,
		Docs:         GetFeedDocs,
		Handler:      GetFeedRoute,
		Auth:         []uapi.AuthType{{Type: "user"}},
		AuthOptional: true,
	}.Route(r)

	uapi.Route{
		Pattern:      "/posts/user/{username}",
		OpId:         "getUserPosts",
		Method:       uapi.GET,
		Docs:         GetUserPostsDocs,
		Handler:      GetUserPostsRoute,
		Auth:         []uapi.AuthType{{Type: "user"}},
		AuthOptional: true,
	}.Route(r)

	uapi.Route{
		Pattern: "/posts",
		OpId:    "createPost",
		Method:  uapi.POST,
		Docs:    CreatePostDocs,
		Handler: CreatePostRoute,
		Auth:    []uapi.AuthType{{Type: "user"}},
	}.Route(r)

	uapi.Route{
		Pattern: "/posts/{post_id}",
		OpId:    "updatePost",
		Method:  uapi.PUT,
		Docs:    UpdatePostDocs,
		Handler: UpdatePostRoute,
		Auth:    []uapi.AuthType{{Type: "user"}},
	}.Route(r)

	uapi.Route{
		Pattern: "/posts/{post_id}",
		OpId:    "deletePost",
		Method:  uapi.DELETE,
		Docs:    DeletePostDocs,
		Handler: DeletePostRoute,
		Auth:    []uapi.AuthType{{Type: "user"}},
	}.Route(r)

	uapi.Route{
		Pattern: "/posts/{post_id}/like",
		OpId:    "toggleLike",
		Method:  uapi.POST,
		Docs:    ToggleLikeDocs,
		Handler: ToggleLikeRoute,
		Auth:    []uapi.AuthType{{Type: "user"}},
	}.Route(r)

	uapi.Route{
		Pattern:      "/posts/{post_id}/comments",
		OpId:         "getComments",
		Method:       uapi.GET,
		Docs:         GetCommentsDocs,
		Handler:      GetCommentsRoute,
		Auth:         []uapi.AuthType{{Type: "user"}},
		AuthOptional: true,
	}.Route(r)

	uapi.Route{
		Pattern: "/posts/{post_id}/comments",
		OpId:    "addComment",
		Method:  uapi.POST,
		Docs:    AddCommentDocs,
		Handler: AddCommentRoute,
		Auth:    []uapi.AuthType{{Type: "user"}},
	}.Route(r)
}
