// Copyright (c) 2026 VideoTube. All rights reserved.

package apiclient

import "context"

/*
Bootstrap restores the session when the application starts.

It first attempts a silent token refresh. On success the current user is
fetched normally. On refresh failure the current user is fetched in silent
mode instead: a visitor whose access token is still valid stays recognized
even though the refresh token has expired, while a fully logged-out visitor
falls through to guest state without a login redirect.

Returns:
  - *User: The restored account, or nil for a guest
*/
func (client *Client) Bootstrap(context context.Context) *User {
	if err := client.refresh(context); err != nil {
		user, silentErr := client.GetCurrentUser(context, true)
		if silentErr != nil {
			return nil
		}
		return user
	}

	user, err := client.GetCurrentUser(context, false)
	if err != nil {
		return nil
	}
	return user
}
