package posts

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

var compiledCommentMessages = uapi.CompileValidationErrors(types.CommentRequest{})

func GetCommentsDocs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get Comments",
		Description: "Comments under a post, oldest first.",
		Params:      []docs.Parameter{postIDParam()},
		Resp:        []types.CommentView{},
		Errors:      []int{http.StatusNotFound},
	}
}

func GetCommentsRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	postID, hresp, ok := uapi.PathID(r, "post_id")
	if !ok {
		return hresp
	}

	comments, err := database.GetComments(state.Pool.WithContext(d.Context), postID)
	if err != nil {
		return api.ErrorResponse(err)
	}

	return uapi.HttpResponse{
		Json: comments,
	}
}

func AddCommentDocs() *docs.Doc {
	return &docs.Doc{
		Summary:       "Add Comment",
		Description:   "Comments on a post. Content is trimmed and must then be 1-500 characters.",
		Params:        []docs.Parameter{postIDParam()},
		Req:           types.CommentRequest{},
		Resp:          types.CommentView{},
		SuccessStatus: http.StatusCreated,
		Errors:        []int{http.StatusNotFound},
	}
}

func AddCommentRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	postID, hresp, ok := uapi.PathID(r, "post_id")
	if !ok {
		return hresp
	}

	var payload types.CommentRequest

	hresp, ok = uapi.MarshalReq(r, &payload)
	if !ok {
		return hresp
	}

	payload.Normalize()

	if err := state.Validator.Struct(payload); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			return uapi.ValidatorErrorResponse(compiledCommentMessages, verr)
		}

		return uapi.DefaultResponse(http.StatusBadRequest)
	}

	comment, err := database.AddComment(state.Pool.WithContext(d.Context), postID, d.Auth.ID, payload.Content)
	if err != nil {
		return api.ErrorResponse(err)
	}

	return uapi.HttpResponse{
		Status: http.StatusCreated,
		Json:   comment,
	}
}
