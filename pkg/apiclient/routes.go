// Copyright (c) 2026 VideoTube. All rights reserved.

package apiclient

// Route identifies one API operation. Interceptor exemptions key off the
// identifier, never off path substrings, so a private path that happens to
// contain "search" or "channel" cannot be misclassified as public.
type Route string

// # Account Routes

const (
	RouteRegister           Route = "register"
	RouteVerifyEmail        Route = "verify-email"
	RouteResendVerification Route = "resend-verification"
	RouteLogin              Route = "login"
	RouteGoogleLogin        Route = "google-login"
	RouteForgotPassword     Route = "forgot-password"
	RouteVerifyOTP          Route = "verify-otp"
	RouteResetPassword      Route = "reset-password"
	RouteRefreshToken       Route = "refresh-token"
	RouteLogout             Route = "logout"
	RouteCurrentUser        Route = "current-user"
	RouteUpdateAccount      Route = "update-account"
	RouteUpdateAvatar       Route = "update-avatar"
	RouteUpdateCoverImage   Route = "update-cover-image"
	RouteChannelProfile     Route = "channel-profile"
	RouteWatchHistory       Route = "watch-history"
	RouteRemoveHistory      Route = "remove-history"
)

// # Catalog Routes

const (
	RouteListVideos    Route = "list-videos"
	RouteVideoDetail   Route = "video-detail"
	RouteSearchVideos  Route = "search"
	RouteRelatedVideos Route = "related"
)

// publicRoutes are operations a guest legitimately calls. A 401 from any of
// them propagates to the caller untouched instead of triggering the
// refresh-and-retry flow.
var publicRoutes = map[Route]bool{
	RouteListVideos:     true,
	RouteVideoDetail:    true,
	RouteSearchVideos:   true,
	RouteRelatedVideos:  true,
	RouteChannelProfile: true,
	RouteVerifyEmail:    true,
}
