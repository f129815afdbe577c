// Copyright (c) 2026 VideoTube. All rights reserved.

package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/videotube/videotube/internal/platform/middleware"
	requestutil "github.com/videotube/videotube/internal/platform/request"
	"github.com/videotube/videotube/internal/platform/respond"
	"github.com/videotube/videotube/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the comment thread HTTP endpoints.
type Handler struct {
	commentService *Service
	authenticator  *middleware.Authenticator
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, authenticator *middleware.Authenticator) *Handler {
	return &Handler{commentService: service, authenticator: authenticator}
}

// Routes returns a [chi.Router] with the comment surface. The whole
// surface requires a signed-in user, reading included.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(handler.authenticator.RequireUser())

	router.Get("/video-comment/{videoId}", handler.thread)
	router.Post("/add-comment/{videoId}", handler.add)
	router.Patch("/update-comment/{commentId}", handler.update)
	router.Delete("/delete-comment/{commentId}", handler.deleteComment)

	return router
}

// commentBody is the JSON payload for posting and editing comments.
type commentBody struct {
	Content string `json:"content"`
}

/*
thread returns one page of a video's comments.

GET /api/v1/comments/video-comment/{videoId}?page=&limit=

Response:
  - 200: ThreadPage: Newest-first comments with like state
*/
func (handler *Handler) thread(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	videoID := requestutil.Param(request, FieldVideoID)

	page, err := handler.commentService.Thread(request.Context(), videoID, userID, params.Page, params.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page, "Comments fetched successfully")
}

/*
add posts a new comment on a video.

POST /api/v1/comments/add-comment/{videoId}

Request:
  - Body: {"content": string}

Response:
  - 201: Comment: Created comment
  - 400: Comment content is required
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	body := commentBody{}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, FieldVideoID)

	comment, err := handler.commentService.Add(request.Context(), videoID, userID, body.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment, "Comment added successfully")
}

// update edits a comment owned by the requester.
//
// PATCH /api/v1/comments/update-comment/{commentId}
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	body := commentBody{}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID := requestutil.Param(request, FieldCommentID)

	comment, err := handler.commentService.Update(request.Context(), commentID, userID, body.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment, "Comment updated successfully")
}

// deleteComment removes a comment owned by the requester.
//
// DELETE /api/v1/comments/delete-comment/{commentId}
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID := requestutil.Param(request, FieldCommentID)

	if err := handler.commentService.Delete(request.Context(), commentID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{}, "Comment deleted successfully")
}
