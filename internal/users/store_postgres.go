// Copyright (c) 2026 VideoTube. All rights reserved.

// PostgreSQL implementations of the users domain repositories.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/videotube/videotube/internal/platform/apperr"
	"github.com/videotube/videotube/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// userColumns is the canonical select list for hydrating a [User].
// Nullable token columns collapse to empty strings so the entity never
// carries SQL NULL semantics.
const userColumns = `
	id, username, email, fullname, avatar, coverimage,
	COALESCE(passwordhash, ''), COALESCE(refreshtoken, ''),
	COALESCE(googleid, ''), isverified, isgooglesignedin, isloggedin,
	COALESCE(otp, ''), otpexpiresat, isotpverified, createdat, updatedat`

// scanUser hydrates a [User] from a row produced with [userColumns].
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.Avatar,
		&user.CoverImage,
		&user.PasswordHash,
		&user.RefreshToken,
		&user.GoogleID,
		&user.IsVerified,
		&user.IsGoogleSignedIn,
		&user.IsLoggedIn,
		&user.OTP,
		&user.OTPExpiresAt,
		&user.IsOTPVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account metadata, ensuring timestamps are initialized
if not provided. Unique violations surface as client-safe conflicts.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, fullname, avatar, coverimage, passwordhash,
			googleid, isverified, isgooglesignedin, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.Avatar,
		user.CoverImage,
		user.PasswordHash,
		user.GoogleID,
		user.IsVerified,
		user.IsGoogleSignedIn,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_create_failed")
	}

	return nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users.account WHERE id = $1"

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users.account WHERE email = $1"

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
FindByUsername retrieves a user record by their unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users.account WHERE username = $1"

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_username_failed: %w", err)
	}

	return user, nil
}

/*
ExistsByEmailOrUsername reports whether any account claims the given email
or username.

Parameters:
  - context: context.Context
  - email: string
  - username: string

Returns:
  - bool: True when a matching row exists
  - error: Database errors
*/
func (repository *PostgresUserRepository) ExistsByEmailOrUsername(context context.Context, email, username string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM users.account WHERE email = $1 OR username = $2
		)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, email, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_user_repo_exists_failed: %w", err)
	}

	return exists, nil
}

// Exists reports whether an account row is still present for the given ID.
// Used by the session middleware so tokens of deleted accounts stop working.
func (repository *PostgresUserRepository) Exists(context context.Context, userID string) (bool, error) {
	const query = "SELECT EXISTS (SELECT 1 FROM users.account WHERE id = $1)"

	var exists bool
	if err := repository.pool.QueryRow(context, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_user_repo_exists_by_id_failed: %w", err)
	}

	return exists, nil
}

// Delete removes an account row. Sessions and owned content cascade at the
// schema level. Used to undo a registration whose verification mail could
// not be dispatched.
func (repository *PostgresUserRepository) Delete(context context.Context, userID string) error {
	const query = "DELETE FROM users.account WHERE id = $1"

	if _, err := repository.pool.Exec(context, query, userID); err != nil {
		return fmt.Errorf("postgres_user_repo_delete_failed: %w", err)
	}

	return nil
}

/*
Update persists changes to a user's mutable profile fields.

Description: Synchronizes fullName, username, and email with the database,
refreshing the updatedat timestamp. Unique violations surface as conflicts.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Update failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET fullname = $2, username = $3, email = $4, updatedat = $5
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.FullName,
		user.Username,
		user.Email,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_update_failed")
	}

	return nil
}

// UpdateAvatar replaces only the avatar URL for a specific user.
func (repository *PostgresUserRepository) UpdateAvatar(context context.Context, userID, avatarURL string) error {
	const query = "UPDATE users.account SET avatar = $2, updatedat = $3 WHERE id = $1"

	_, err := repository.pool.Exec(context, query, userID, avatarURL, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_avatar_failed: %w", err)
	}
	return nil
}

// UpdateCoverImage replaces only the cover image URL for a specific user.
func (repository *PostgresUserRepository) UpdateCoverImage(context context.Context, userID, coverImageURL string) error {
	const query = "UPDATE users.account SET coverimage = $2, updatedat = $3 WHERE id = $1"

	_, err := repository.pool.Exec(context, query, userID, coverImageURL, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_cover_image_failed: %w", err)
	}
	return nil
}

// UpdatePassword updates only the password hash for a specific user.
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = "UPDATE users.account SET passwordhash = $2, updatedat = $3 WHERE id = $1"

	_, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}
	return nil
}

/*
SetRefreshToken stores the single active refresh token for the user.

Description: An empty refreshToken clears the slot, which revokes the
current session. NULLIF keeps the column NULL rather than empty-string.
The isloggedin flag tracks the slot: storing a token marks the account
logged in, clearing it marks the account logged out.

Parameters:
  - context: context.Context
  - userID: string
  - refreshToken: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) SetRefreshToken(context context.Context, userID, refreshToken string) error {
	const query = `
		UPDATE users.account
		SET refreshtoken = NULLIF($2, ''), isloggedin = ($2 <> ''), updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, refreshToken, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_refresh_token_failed: %w", err)
	}
	return nil
}

// MarkVerified updates the user's status to isverified = true.
func (repository *PostgresUserRepository) MarkVerified(context context.Context, userID string) error {
	const query = "UPDATE users.account SET isverified = TRUE, updatedat = $2 WHERE id = $1"

	_, err := repository.pool.Exec(context, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_mark_verified_failed: %w", err)
	}
	return nil
}

// SetOTP stores a password-recovery OTP and its expiry, resetting any
// prior verification state.
func (repository *PostgresUserRepository) SetOTP(context context.Context, userID, otp string, expiresAt time.Time) error {
	const query = `
		UPDATE users.account
		SET otp = $2, otpexpiresat = $3, isotpverified = FALSE, updatedat = $4
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, otp, expiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_otp_failed: %w", err)
	}
	return nil
}

// MarkOTPVerified consumes the OTP and clears the account for a password reset.
func (repository *PostgresUserRepository) MarkOTPVerified(context context.Context, userID string) error {
	const query = `
		UPDATE users.account
		SET otp = NULL, otpexpiresat = NULL, isotpverified = TRUE, updatedat = $2
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_mark_otp_verified_failed: %w", err)
	}
	return nil
}

// ClearOTP wipes all OTP state from the account.
func (repository *PostgresUserRepository) ClearOTP(context context.Context, userID string) error {
	const query = `
		UPDATE users.account
		SET otp = NULL, otpexpiresat = NULL, isotpverified = FALSE, updatedat = $2
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_clear_otp_failed: %w", err)
	}
	return nil
}

/*
ChannelProfile builds the public channel read model for a username.

Description: Aggregates subscriber counts from social.subscription and
resolves whether the viewer subscribes to the channel. viewerID may be
empty for anonymous viewers; NULLIF collapses it to NULL so the EXISTS
check simply yields false.

Parameters:
  - context: context.Context
  - username: string
  - viewerID: string

Returns:
  - *ChannelProfile: Aggregated channel view
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) ChannelProfile(context context.Context, username, viewerID string) (*ChannelProfile, error) {
	const query = `
		SELECT
			a.id, a.fullname, a.username, a.email, a.avatar, a.coverimage,
			(SELECT COUNT(*) FROM social.subscription s WHERE s.channelid = a.id) AS subscriberscount,
			(SELECT COUNT(*) FROM social.subscription s WHERE s.subscriberid = a.id) AS subscribedtocount,
			EXISTS (
				SELECT 1 FROM social.subscription s
				WHERE s.channelid = a.id AND s.subscriberid = NULLIF($2, '')::uuid
			) AS issubscribed
		FROM users.account a
		WHERE a.username = $1`

	profile := &ChannelProfile{}
	err := repository.pool.QueryRow(context, query, username, viewerID).Scan(
		&profile.ID,
		&profile.FullName,
		&profile.Username,
		&profile.Email,
		&profile.Avatar,
		&profile.CoverImage,
		&profile.SubscribersCount,
		&profile.ChannelsSubscribedToCount,
		&profile.IsSubscribed,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("channel does not exist")
		}
		return nil, fmt.Errorf("postgres_user_repo_channel_profile_failed: %w", err)
	}

	return profile, nil
}

/*
WatchHistory returns the user's watched videos, newest first.

Description: Joins users.watchhistory against core.video and the owning
account, embedding each owner's live subscriber count.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []WatchHistoryEntry: Ordered history
  - error: Execution errors
*/
func (repository *PostgresUserRepository) WatchHistory(context context.Context, userID string) ([]WatchHistoryEntry, error) {
	const query = `
		SELECT
			v.id, v.title, v.description, v.videofile, v.thumbnail,
			v.duration, v.views, v.createdat, h.watchedat,
			o.id, o.username, o.fullname, o.avatar,
			(SELECT COUNT(*) FROM social.subscription s WHERE s.channelid = o.id) AS subscriberscount
		FROM users.watchhistory h
		JOIN core.video v ON v.id = h.videoid
		JOIN users.account o ON o.id = v.ownerid
		WHERE h.userid = $1
		ORDER BY h.watchedat DESC`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_watch_history_failed: %w", err)
	}
	defer rows.Close()

	entries := []WatchHistoryEntry{}
	for rows.Next() {
		var entry WatchHistoryEntry
		err := rows.Scan(
			&entry.ID,
			&entry.Title,
			&entry.Description,
			&entry.VideoFile,
			&entry.Thumbnail,
			&entry.Duration,
			&entry.Views,
			&entry.CreatedAt,
			&entry.WatchedAt,
			&entry.Owner.ID,
			&entry.Owner.Username,
			&entry.Owner.FullName,
			&entry.Owner.Avatar,
			&entry.Owner.SubscribersCount,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_user_repo_watch_history_scan_failed: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_user_repo_watch_history_rows_failed: %w", err)
	}

	return entries, nil
}

// RemoveFromWatchHistory deletes one video from the user's history.
// Removing a video that is not in the history is a no-op.
func (repository *PostgresUserRepository) RemoveFromWatchHistory(context context.Context, userID, videoID string) error {
	const query = "DELETE FROM users.watchhistory WHERE userid = $1 AND videoid = $2"

	_, err := repository.pool.Exec(context, query, userID, videoID)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_remove_history_failed: %w", err)
	}
	return nil
}

// # Session Repository

// PostgresSessionRepository implements the SessionRepository interface.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

/*
Replace removes any existing session rows for the user and records the new one.

Description: Enforces the single-active-session rule inside one transaction,
so a crash between the delete and the insert cannot leave a user with two
live sessions.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Storage failures
*/
func (repository *PostgresSessionRepository) Replace(context context.Context, session *Session) error {
	const deleteQuery = "DELETE FROM users.session WHERE userid = $1"
	const insertQuery = `
		INSERT INTO users.session (
			id, userid, refreshtoken, useragent, ipaddress, expiresat, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	if _, err := transaction.Exec(context, deleteQuery, session.UserID); err != nil {
		return fmt.Errorf("postgres_session_repo_replace_delete_failed: %w", err)
	}

	_, err = transaction.Exec(context, insertQuery,
		session.ID,
		session.UserID,
		session.RefreshToken,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_replace_insert_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_session_repo_commit_failed: %w", err)
	}

	return nil
}

// DeleteAllForUser removes every session row belonging to the user.
func (repository *PostgresSessionRepository) DeleteAllForUser(context context.Context, userID string) error {
	const query = "DELETE FROM users.session WHERE userid = $1"

	_, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_delete_all_failed: %w", err)
	}
	return nil
}
