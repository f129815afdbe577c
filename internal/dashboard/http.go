// Copyright (c) 2026 VideoTube. All rights reserved.

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/videotube/videotube/internal/platform/middleware"
	requestutil "github.com/videotube/videotube/internal/platform/request"
	"github.com/videotube/videotube/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the creator dashboard HTTP endpoints.
type Handler struct {
	dashboardService *Service
	authenticator    *middleware.Authenticator
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, authenticator *middleware.Authenticator) *Handler {
	return &Handler{dashboardService: service, authenticator: authenticator}
}

// Routes returns a [chi.Router] with the dashboard surface. Everything
// here needs a signed-in user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(handler.authenticator.RequireUser())

	router.Get("/stats", handler.stats)
	router.Get("/videos", handler.channelVideos)

	return router
}

// stats returns the requester's channel aggregates.
//
// GET /api/v1/dashboard/stats
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.dashboardService.Stats(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats, "Channel stats fetched successfully")
}

// channelVideos returns the requester's videos with engagement counts.
//
// GET /api/v1/dashboard/videos
func (handler *Handler) channelVideos(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videos, err := handler.dashboardService.ChannelVideos(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, videos, "Channel videos fetched successfully")
}
