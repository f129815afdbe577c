// Copyright (c) 2026 VideoTube. All rights reserved.

package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListVideosOptions filters and orders the public feed. Zero values are
// omitted from the query string.
type ListVideosOptions struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
	UserID   string
}

// ListVideos fetches one page of the published feed. Guests may call it; a
// 401 propagates without triggering the refresh flow.
func (client *Client) ListVideos(context context.Context, options ListVideosOptions) (*VideoPage, error) {
	query := url.Values{}
	if options.Page > 0 {
		query.Set("page", strconv.Itoa(options.Page))
	}
	if options.Limit > 0 {
		query.Set("limit", strconv.Itoa(options.Limit))
	}
	if options.Query != "" {
		query.Set("query", options.Query)
	}
	if options.SortBy != "" {
		query.Set("sortBy", options.SortBy)
	}
	if options.SortType != "" {
		query.Set("sortType", options.SortType)
	}
	if options.UserID != "" {
		query.Set("userId", options.UserID)
	}

	page := &VideoPage{}
	request := call{route: RouteListVideos, method: http.MethodGet, path: "/video", query: query}
	if _, err := client.do(context, request, page); err != nil {
		return nil, err
	}
	return page, nil
}

// GetVideo fetches the watch page for one video. Signed-in viewers also get
// their like and subscription state.
func (client *Client) GetVideo(context context.Context, videoID string) (*Video, error) {
	video := &Video{}
	request := call{route: RouteVideoDetail, method: http.MethodGet, path: "/video/" + url.PathEscape(videoID)}
	if _, err := client.do(context, request, video); err != nil {
		return nil, err
	}
	return video, nil
}

// SearchVideos returns title suggestions for a search-as-you-type box.
func (client *Client) SearchVideos(context context.Context, searchQuery string, limit int) ([]Video, error) {
	query := url.Values{}
	query.Set("query", searchQuery)
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	suggestions := []Video{}
	request := call{route: RouteSearchVideos, method: http.MethodGet, path: "/video/search", query: query}
	if _, err := client.do(context, request, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// RelatedVideos lists videos similar to the one being watched.
func (client *Client) RelatedVideos(context context.Context, videoID string) ([]Video, error) {
	related := []Video{}
	request := call{route: RouteRelatedVideos, method: http.MethodGet, path: "/video/related/" + url.PathEscape(videoID)}
	if _, err := client.do(context, request, &related); err != nil {
		return nil, err
	}
	return related, nil
}
