package posts

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

var compiledPostMessages = uapi.CompileValidationErrors(types.PostRequest{})

// readPost decodes, trims and validates a post body.
func readPost(r *http.Request) (types.PostRequest, uapi.HttpResponse, bool) {
	var payload types.PostRequest

	hresp, ok := uapi.MarshalReq(r, &payload)
	if !ok {
		return payload, hresp, false
	}

	payload.Normalize()

	if err := state.Validator.Struct(payload); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			return payload, uapi.ValidatorErrorResponse(compiledPostMessages, verr), false
		}

		return payload, uapi.DefaultResponse(http.StatusBadRequest), false
	}

	return payload, uapi.HttpResponse{}, true
}

func CreatePostDocs() *docs.Doc {
	return &docs.Doc{
		Summary:       "Create Post",
		Description:   "Publishes a post. Content is trimmed and must then be 1-1000 characters.",
		Req:           types.PostRequest{},
		Resp:          types.PostView{},
		SuccessStatus: http.StatusCreated,
	}
}

func CreatePostRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	payload, hresp, ok := readPost(r)
	if !ok {
		return hresp
	}

	post, err := database.CreatePost(state.Pool.WithContext(d.Context), d.Auth.ID, payload.Content)
	if err != nil {
		return api.ErrorResponse(err)
	}

	monitoring.PostsCreated.Inc()

	return uapi.HttpResponse{
		Status: http.StatusCreated,
		Json:   post,
	}
}

func UpdatePostDocs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Update Post",
		Description: "Replaces the content of a post you own.",
		Params:      []docs.Parameter{postIDParam()},
		Req:         types.PostRequest{},
		Resp:        types.PostView{},
		Errors:      []int{http.StatusForbidden, http.StatusNotFound},
	}
}

func UpdatePostRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	postID, hresp, ok := uapi.PathID(r, "post_id")
	if !ok {
		return hresp
	}

	payload, hresp, ok := readPost(r)
	if !ok {
		return hresp
	}

	post, err := database.UpdatePost(state.Pool.WithContext(d.Context), postID, d.Auth.ID, payload.Content)
	if err != nil {
		return api.ErrorResponse(err)
	}

	return uapi.HttpResponse{
		Json: post,
	}
}

func DeletePostDocs() *docs.Doc {
	return &docs.Doc{
		Summary:       "Delete Post",
		Description:   "Deletes a post you own together with its comments and likes.",
		Params:        []docs.Parameter{postIDParam()},
		SuccessStatus: http.StatusNoContent,
		Errors:        []int{http.StatusForbidden, http.StatusNotFound},
	}
}

func DeletePostRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	postID, hresp, ok := uapi.PathID(r, "post_id")
	if !ok {
		return hresp
	}

	if err := database.DeletePost(state.Pool.WithContext(d.Context), postID, d.Auth.ID); err != nil {
		return api.ErrorResponse(err)
	}

	return uapi.DefaultResponse(http.StatusNoContent)
}

func ToggleLikeDocs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Toggle Like",
		Description: "Likes the post if you have not liked it yet, otherwise removes your like. Calling it twice leaves things as they were.",
		Params:      []docs.Parameter{postIDParam()},
		Resp:        types.LikeView{},
		Errors:      []int{http.StatusNotFound},
	}
}

func ToggleLikeRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	postID, hresp, ok := uapi.PathID(r, "post_id")
	if !ok {
		return hresp
	}

	view, err := database.ToggleLike(state.Pool.WithContext(d.Context), d.Auth.ID, postID)
	if err != nil {
		return api.ErrorResponse(err)
	}

	if view.LikedByMe {
		monitoring.LikeToggles.WithLabelValues("liked").Inc()
	} else {
		monitoring.LikeToggles.WithLabelValues("unliked").Inc()
	}

	return uapi.HttpResponse{
		Json: view,
	}
}
