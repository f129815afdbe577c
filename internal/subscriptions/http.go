// Copyright (c) 2026 VideoTube. All rights reserved.

package subscriptions

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/videotube/videotube/internal/platform/middleware"
	requestutil "github.com/videotube/videotube/internal/platform/request"
	"github.com/videotube/videotube/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the subscription HTTP endpoints.
type Handler struct {
	subscriptionService *Service
	authenticator       *middleware.Authenticator
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, authenticator *middleware.Authenticator) *Handler {
	return &Handler{subscriptionService: service, authenticator: authenticator}
}

// Routes returns a [chi.Router] with the subscription surface.
// Everything here needs a signed-in user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(handler.authenticator.RequireUser())

	router.Post("/c/{channelId}", handler.toggle)
	router.Get("/c/{channelId}", handler.subscribers)
	router.Get("/u/{subscriberId}", handler.subscribedChannels)

	return router
}

/*
toggle flips the requester's subscription to a channel.

POST /api/v1/subscription/c/{channelId}

Response:
  - 200: Toggle: Subscription state after the toggle
  - 400: Channel id is not valid
*/
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	channelID := requestutil.Param(request, FieldChannelID)

	toggle, err := handler.subscriptionService.Toggle(request.Context(), channelID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message := "Channel unsubscribed successfully"
	if toggle.Action == ActionSubscribed {
		message = "Channel subscribed successfully"
	}

	respond.OK(writer, toggle, message)
}

// subscribers returns the accounts subscribed to a channel.
//
// GET /api/v1/subscription/c/{channelId}
func (handler *Handler) subscribers(writer http.ResponseWriter, request *http.Request) {
	channelID := requestutil.Param(request, FieldChannelID)

	subscribers, err := handler.subscriptionService.Subscribers(request.Context(), channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, subscribers, "Got subscribers of channel successfully")
}

// subscribedChannels returns the channels a user is subscribed to.
//
// GET /api/v1/subscription/u/{subscriberId}
func (handler *Handler) subscribedChannels(writer http.ResponseWriter, request *http.Request) {
	subscriberID := requestutil.Param(request, FieldSubscriberID)

	channels, err := handler.subscriptionService.SubscribedChannels(request.Context(), subscriberID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, channels, "Fetched subscribed channels successfully")
}
