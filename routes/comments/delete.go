package comments

import (
	"net/http"

	"cadrebook/api"
	"cadrebook/database"
	"cadrebook/state"
	"cadrebook/uapi"

	docs "cadrebook/doclib"
)

func DeleteCommentDocs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Delete Comment",
		Description: "Deletes a comment you wrote and lowers the post's comment count.",
		Params: []docs.Parameter{
			{
				Name:        "comment_id",
				In:          "path",
				Description: "Comment ID",
				Required:    true,
				Schema:      docs.IdSchema,
			},
		},
		SuccessStatus: http.StatusNoContent,
		Errors:        []int{http.StatusForbidden, http.StatusNotFound},
	}
}

func DeleteCommentRoute(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	commentID, hresp, ok := uapi.PathID(r, "comment_id")
	if !ok {
		return hresp
	}

	if err := database.DeleteComment(state.Pool.WithContext(d.Context), commentID, d.Auth.ID); err != nil {
		return api.ErrorResponse(err)
	}

	return uapi.DefaultResponse(http.StatusNoContent)
}
