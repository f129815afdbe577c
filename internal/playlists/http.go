// Copyright (c) 2026 VideoTube. All rights reserved.

package playlists

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/videotube/videotube/internal/platform/middleware"
	requestutil "github.com/videotube/videotube/internal/platform/request"
	"github.com/videotube/videotube/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the playlist HTTP endpoints.
type Handler struct {
	playlistService *Service
	authenticator   *middleware.Authenticator
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, authenticator *middleware.Authenticator) *Handler {
	return &Handler{playlistService: service, authenticator: authenticator}
}

// Routes returns a [chi.Router] with the playlist surface. Everything
// here needs a signed-in user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(handler.authenticator.RequireUser())

	router.Post("/", handler.create)
	router.Get("/user/{userId}", handler.byUser)
	router.Get("/{playlistId}", handler.get)
	router.Patch("/add/{videoId}/{playlistId}", handler.addVideo)
	router.Patch("/remove/{videoId}/{playlistId}", handler.removeVideo)
	router.Patch("/{playlistId}", handler.update)
	router.Delete("/{playlistId}", handler.deletePlaylist)

	return router
}

// playlistBody is the JSON payload for creating and editing playlists.
type playlistBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	VideoID     string `json:"videoId"`
}

/*
create starts a new playlist, optionally seeded with one video.

POST /api/v1/playlist

Request:
  - Body: {"name": string, "description": string, "videoId": string|null}

Response:
  - 200: Playlist: Created playlist
  - 400: Name is required
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	body := playlistBody{}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.playlistService.Create(request.Context(), CreateInput{
		OwnerID:     userID,
		Name:        body.Name,
		Description: body.Description,
		VideoID:     body.VideoID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist, "Created new Playlist successfully")
}

// byUser returns a user's playlists as grid cards.
//
// GET /api/v1/playlist/user/{userId}
func (handler *Handler) byUser(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, FieldUserID)

	cards, err := handler.playlistService.ByUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, cards, "Got user playlist successfully")
}

// get returns the playlist page view.
//
// GET /api/v1/playlist/{playlistId}
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	playlistID := requestutil.Param(request, FieldPlaylistID)

	detail, err := handler.playlistService.Get(request.Context(), playlistID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail, "Got playlist successfully")
}

/*
addVideo appends a video to a playlist owned by the requester.

PATCH /api/v1/playlist/add/{videoId}/{playlistId}

Response:
  - 200: Playlist: Playlist after the addition
  - 400: This video is already exist in playlist
  - 403: You are not allowed to modify this playlist
*/
func (handler *Handler) addVideo(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlistID := requestutil.Param(request, FieldPlaylistID)
	videoID := requestutil.Param(request, FieldVideoID)

	playlist, err := handler.playlistService.AddVideo(request.Context(), playlistID, videoID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist, "Video added to playlist successfully")
}

// removeVideo drops a video from a playlist owned by the requester.
//
// PATCH /api/v1/playlist/remove/{videoId}/{playlistId}
func (handler *Handler) removeVideo(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlistID := requestutil.Param(request, FieldPlaylistID)
	videoID := requestutil.Param(request, FieldVideoID)

	playlist, err := handler.playlistService.RemoveVideo(request.Context(), playlistID, videoID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist, "Video removed from playlist successfully")
}

// update renames a playlist owned by the requester.
//
// PATCH /api/v1/playlist/{playlistId}
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	body := playlistBody{}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlistID := requestutil.Param(request, FieldPlaylistID)

	playlist, err := handler.playlistService.Update(request.Context(), playlistID, userID, body.Name, body.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist, "Playlist updated successfully")
}

// deletePlaylist removes a playlist owned by the requester.
//
// DELETE /api/v1/playlist/{playlistId}
func (handler *Handler) deletePlaylist(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlistID := requestutil.Param(request, FieldPlaylistID)

	if err := handler.playlistService.Delete(request.Context(), playlistID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{}, "Playlist deleted Successfully")
}
