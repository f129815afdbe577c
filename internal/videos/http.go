// Copyright (c) 2026 VideoTube. All rights reserved.

package videos

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/videotube/videotube/internal/platform/constants"
	"github.com/videotube/videotube/internal/platform/middleware"
	requestutil "github.com/videotube/videotube/internal/platform/request"
	"github.com/videotube/videotube/internal/platform/respond"
	"github.com/videotube/videotube/pkg/convert"
	"github.com/videotube/videotube/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the video catalog HTTP endpoints.
type Handler struct {
	videoService  *Service
	authenticator *middleware.Authenticator
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, authenticator *middleware.Authenticator) *Handler {
	return &Handler{videoService: service, authenticator: authenticator}
}

// Routes returns a [chi.Router] with the video surface.
//
// The static /search route is registered before the dynamic {videoId}
// route so suggestion requests never resolve as a video lookup.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.list)
	router.Get("/search", handler.search)
	router.Get("/related/{videoId}", handler.related)

	// The watch page works for guests, but signed-in viewers get their
	// like/subscription state and a history entry.
	router.With(handler.authenticator.OptionalUser()).Get("/{videoId}", handler.get)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(handler.authenticator.RequireUser())
		r.Post("/", handler.publish)
		r.Patch("/{videoId}", handler.update)
		r.Delete("/{videoId}", handler.deleteVideo)
		r.Patch("/toggle/publish/{videoId}", handler.togglePublish)
	})

	return router
}

/*
list returns one page of the published feed.

GET /api/v1/video?page=&limit=&query=&sortBy=&sortType=&userId=

Response:
  - 200: ListResult: Paginated feed items
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	values := request.URL.Query()

	result, err := handler.videoService.List(request.Context(), ListQuery{
		Query:    values.Get("query"),
		UserID:   values.Get("userId"),
		SortBy:   values.Get("sortBy"),
		SortType: values.Get("sortType"),
		Page:     params.Page,
		Limit:    params.Limit,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result, "Videos fetched successfully")
}

// search returns lightweight suggestions for the search box.
//
// GET /api/v1/video/search?query=&limit=
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	limit := convert.ToInt(values.Get("limit"))

	suggestions, err := handler.videoService.Search(request.Context(), values.Get("query"), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, suggestions, "Search results")
}

// related returns the watch-page sidebar recommendations.
//
// GET /api/v1/video/related/{videoId}
func (handler *Handler) related(writer http.ResponseWriter, request *http.Request) {
	videoID := requestutil.Param(request, FieldVideoID)

	related, err := handler.videoService.Related(request.Context(), videoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, related, "Related videos fetched successfully")
}

/*
get returns the watch-page view and registers the viewing.

GET /api/v1/video/{videoId}

Response:
  - 200: VideoDetail: Video with like and subscription state
  - 404: Video not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	videoID := requestutil.Param(request, FieldVideoID)

	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	detail, err := handler.videoService.Get(request.Context(), videoID, viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail, "Video fetched successfully")
}

/*
publish uploads a new video from a multipart form.

POST /api/v1/video

Request:
  - Multipart form: title, description, duration
  - Files: videoFile (required), thumbnail (required)

Response:
  - 201: Video: Created entity
  - 400: Missing metadata or files
*/
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadBytes)

	videoFile, videoHeader, err := requestutil.FormFile(request, FieldVideoFile)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if videoFile != nil {
		defer videoFile.Close()
	}

	thumbnailFile, thumbnailHeader, err := requestutil.FormFile(request, FieldThumbnail)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if thumbnailFile != nil {
		defer thumbnailFile.Close()
	}

	duration := convert.ToFloat64(request.FormValue(FieldDuration))

	input := PublishInput{
		OwnerID:     userID,
		Title:       request.FormValue(FieldTitle),
		Description: request.FormValue(FieldDescription),
		Duration:    duration,
	}
	if videoFile != nil {
		input.VideoFile = videoFile
		input.VideoFilename = videoHeader.Filename
		input.VideoContentType = videoHeader.Header.Get("Content-Type")
	}
	if thumbnailFile != nil {
		input.Thumbnail = thumbnailFile
		input.ThumbnailFilename = thumbnailHeader.Filename
	}

	video, err := handler.videoService.Publish(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, video, "Video published successfully")
}

/*
update edits metadata and optionally replaces the thumbnail.

PATCH /api/v1/video/{videoId}

Request:
  - Multipart form: title, description, duration (all optional)
  - Files: thumbnail (optional)

Response:
  - 200: Video: Updated entity
  - 401: You are not allowed to update this video
  - 404: Video not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxImageUploadBytes)

	thumbnailFile, thumbnailHeader, err := requestutil.FormFile(request, FieldThumbnail)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if thumbnailFile != nil {
		defer thumbnailFile.Close()
	}

	duration := convert.ToFloat64(request.FormValue(FieldDuration))

	input := UpdateInput{
		VideoID:     requestutil.Param(request, FieldVideoID),
		EditorID:    userID,
		Title:       request.FormValue(FieldTitle),
		Description: request.FormValue(FieldDescription),
		Duration:    duration,
	}
	if thumbnailFile != nil {
		input.Thumbnail = thumbnailFile
		input.ThumbnailFilename = thumbnailHeader.Filename
	}

	video, err := handler.videoService.Update(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video, "Video updated successfully")
}

// deleteVideo removes a video owned by the requester.
//
// DELETE /api/v1/video/{videoId}
func (handler *Handler) deleteVideo(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, FieldVideoID)

	if err := handler.videoService.Delete(request.Context(), videoID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{}, "Video deleted Successfully")
}

// togglePublish flips the published flag.
//
// PATCH /api/v1/video/toggle/publish/{videoId}
func (handler *Handler) togglePublish(writer http.ResponseWriter, request *http.Request) {
	videoID := requestutil.Param(request, FieldVideoID)

	video, err := handler.videoService.TogglePublish(request.Context(), videoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message := "Video unpublished successfully"
	if video.IsPublished {
		message = "Video published successfully"
	}

	respond.OK(writer, video, message)
}
