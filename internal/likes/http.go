// Copyright (c) 2026 VideoTube. All rights reserved.

package likes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/videotube/videotube/internal/platform/middleware"
	requestutil "github.com/videotube/videotube/internal/platform/request"
	"github.com/videotube/videotube/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the like HTTP endpoints.
type Handler struct {
	likeService   *Service
	authenticator *middleware.Authenticator
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, authenticator *middleware.Authenticator) *Handler {
	return &Handler{likeService: service, authenticator: authenticator}
}

// Routes returns a [chi.Router] with the like surface. Everything here
// needs a signed-in user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(handler.authenticator.RequireUser())

	router.Post("/toggle/v/{videoId}", handler.toggleVideo)
	router.Post("/toggle/c/{commentId}", handler.toggleComment)
	router.Get("/videos", handler.likedVideos)

	return router
}

/*
toggleVideo flips the requester's like on a video.

POST /api/v1/likes/toggle/v/{videoId}

Response:
  - 200: VideoToggle: Like state after the toggle
  - 400: Invalid video Id
*/
func (handler *Handler) toggleVideo(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, FieldVideoID)

	toggle, err := handler.likeService.ToggleVideoLike(request.Context(), videoID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message := "Video unliked successfully"
	if toggle.IsLiked {
		message = "Video liked successfully"
	}

	respond.OK(writer, toggle, message)
}

// toggleComment flips the requester's like on a comment.
//
// POST /api/v1/likes/toggle/c/{commentId}
func (handler *Handler) toggleComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID := requestutil.Param(request, FieldCommentID)

	toggle, err := handler.likeService.ToggleCommentLike(request.Context(), commentID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message := "Comment unliked successfully"
	if toggle.IsLiked {
		message = "Comment liked successfully"
	}

	respond.OK(writer, toggle, message)
}

// likedVideos returns the requester's liked-videos collection.
//
// GET /api/v1/likes/videos
func (handler *Handler) likedVideos(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, err := handler.likeService.LikedVideos(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items, "Liked videos fetched successfully")
}
