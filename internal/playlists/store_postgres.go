// Copyright (c) 2026 VideoTube. All rights reserved.

package playlists

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/videotube/videotube/internal/platform/apperr"
	"github.com/videotube/videotube/internal/platform/database/schema"
)

// PostgresPlaylistRepository implements the PlaylistRepository interface using pgx.
type PostgresPlaylistRepository struct {
	pool *pgxpool.Pool
}

// NewPlaylistRepository creates a new PostgreSQL implementation of the PlaylistRepository.
func NewPlaylistRepository(pool *pgxpool.Pool) *PostgresPlaylistRepository {
	return &PostgresPlaylistRepository{pool: pool}
}

/*
Create persists a playlist and its initial membership rows in one
transaction.

Parameters:
  - context: context.Context
  - playlist: *Playlist

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresPlaylistRepository) Create(context context.Context, playlist *Playlist) error {
	insertPlaylist := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.CorePlaylist.Table,
		schema.CorePlaylist.ID, schema.CorePlaylist.OwnerID, schema.CorePlaylist.Name,
		schema.CorePlaylist.Description, schema.CorePlaylist.CreatedAt, schema.CorePlaylist.UpdatedAt,
	)

	insertVideo := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		schema.CorePlaylistVideo.Table,
		schema.CorePlaylistVideo.PlaylistID, schema.CorePlaylistVideo.VideoID,
	)

	now := time.Now()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_playlist_repo_create_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	_, err = transaction.Exec(context, insertPlaylist,
		playlist.ID,
		playlist.OwnerID,
		playlist.Name,
		playlist.Description,
		playlist.CreatedAt,
		playlist.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_playlist_repo_create_failed: %w", err)
	}

	for _, videoID := range playlist.VideoIDs {
		if _, err := transaction.Exec(context, insertVideo, playlist.ID, videoID); err != nil {
			return fmt.Errorf("postgres_playlist_repo_create_video_failed: %w", err)
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_playlist_repo_create_commit_failed: %w", err)
	}

	return nil
}

// FindByID returns the playlist with its video IDs in added order.
func (repository *PostgresPlaylistRepository) FindByID(context context.Context, id string) (*Playlist, error) {
	const query = `
		SELECT id, ownerid, name, description, createdat, updatedat
		FROM core.playlist
		WHERE id = $1`

	playlist := &Playlist{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&playlist.ID,
		&playlist.OwnerID,
		&playlist.Name,
		&playlist.Description,
		&playlist.CreatedAt,
		&playlist.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Playlist not found")
		}
		return nil, fmt.Errorf("postgres_playlist_repo_find_failed: %w", err)
	}

	const videosQuery = `
		SELECT videoid FROM core.playlistvideo
		WHERE playlistid = $1
		ORDER BY position ASC`

	rows, err := repository.pool.Query(context, videosQuery, id)
	if err != nil {
		return nil, fmt.Errorf("postgres_playlist_repo_find_videos_failed: %w", err)
	}
	defer rows.Close()

	playlist.VideoIDs = []string{}
	for rows.Next() {
		videoID := ""
		if err := rows.Scan(&videoID); err != nil {
			return nil, fmt.Errorf("postgres_playlist_repo_find_videos_scan_failed: %w", err)
		}
		playlist.VideoIDs = append(playlist.VideoIDs, videoID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_playlist_repo_find_videos_rows_failed: %w", err)
	}

	return playlist, nil
}

/*
ByOwner returns the owner's playlists as grid cards, newest first.

Description: Each card carries the playlist's video IDs in added order
and the first video's thumbnail for the cover.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - []Card: Playlist cards
  - error: Query failures
*/
func (repository *PostgresPlaylistRepository) ByOwner(context context.Context, ownerID string) ([]Card, error) {
	const query = `
		SELECT p.id, p.ownerid, p.name, p.description, p.createdat, p.updatedat,
		       COALESCE(
		           ARRAY(SELECT pv.videoid FROM core.playlistvideo pv
		                 WHERE pv.playlistid = p.id ORDER BY pv.position ASC),
		           '{}'
		       ) AS videoids,
		       COALESCE(
		           (SELECT v.thumbnail FROM core.playlistvideo pv
		            JOIN core.video v ON v.id = pv.videoid
		            WHERE pv.playlistid = p.id
		            ORDER BY pv.position ASC LIMIT 1),
		           ''
		       ) AS playlistthumbnail
		FROM core.playlist p
		WHERE p.ownerid = $1
		ORDER BY p.createdat DESC`

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres_playlist_repo_by_owner_failed: %w", err)
	}
	defer rows.Close()

	cards := []Card{}
	for rows.Next() {
		card := Card{}
		err := rows.Scan(
			&card.ID,
			&card.OwnerID,
			&card.Name,
			&card.Description,
			&card.CreatedAt,
			&card.UpdatedAt,
			&card.VideoIDs,
			&card.PlaylistThumbnail,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_playlist_repo_by_owner_scan_failed: %w", err)
		}
		if card.VideoIDs == nil {
			card.VideoIDs = []string{}
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_playlist_repo_by_owner_rows_failed: %w", err)
	}

	return cards, nil
}

// Detail returns the playlist page view with resolved videos in added
// order, each carrying its channel summary.
func (repository *PostgresPlaylistRepository) Detail(context context.Context, id string) (*Detail, error) {
	const headQuery = `
		SELECT p.id, p.name, p.description, p.createdat, p.updatedat,
		       a.id, a.fullname, a.username, a.avatar
		FROM core.playlist p
		JOIN users.account a ON a.id = p.ownerid
		WHERE p.id = $1`

	detail := &Detail{}
	err := repository.pool.QueryRow(context, headQuery, id).Scan(
		&detail.ID,
		&detail.Name,
		&detail.Description,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.Owner.ID,
		&detail.Owner.FullName,
		&detail.Owner.Username,
		&detail.Owner.Avatar,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Playlist not found")
		}
		return nil, fmt.Errorf("postgres_playlist_repo_detail_failed: %w", err)
	}

	const videosQuery = `
		SELECT v.id, v.videofile, v.thumbnail, v.title, v.description,
		       v.duration, v.views, v.ispublished, v.createdat,
		       a.id, a.fullname, a.username, a.avatar,
		       (SELECT COUNT(*) FROM social.subscription s WHERE s.channelid = a.id) AS subscriberscount
		FROM core.playlistvideo pv
		JOIN core.video v ON v.id = pv.videoid
		JOIN users.account a ON a.id = v.ownerid
		WHERE pv.playlistid = $1
		ORDER BY pv.position ASC`

	rows, err := repository.pool.Query(context, videosQuery, id)
	if err != nil {
		return nil, fmt.Errorf("postgres_playlist_repo_detail_videos_failed: %w", err)
	}
	defer rows.Close()

	detail.Videos = []Video{}
	for rows.Next() {
		video := Video{}
		err := rows.Scan(
			&video.ID,
			&video.VideoFile,
			&video.Thumbnail,
			&video.Title,
			&video.Description,
			&video.Duration,
			&video.Views,
			&video.IsPublished,
			&video.CreatedAt,
			&video.Owner.ID,
			&video.Owner.FullName,
			&video.Owner.Username,
			&video.Owner.Avatar,
			&video.Owner.SubscribersCount,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_playlist_repo_detail_videos_scan_failed: %w", err)
		}
		detail.Videos = append(detail.Videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_playlist_repo_detail_videos_rows_failed: %w", err)
	}

	return detail, nil
}

// AddVideo appends a video to the playlist, taking the next free position.
func (repository *PostgresPlaylistRepository) AddVideo(context context.Context, playlistID, videoID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s)
		SELECT $1, $2, COALESCE(MAX(%[4]s) + 1, 0) FROM %[1]s WHERE %[2]s = $1
		ON CONFLICT DO NOTHING`,
		schema.CorePlaylistVideo.Table,
		schema.CorePlaylistVideo.PlaylistID, schema.CorePlaylistVideo.VideoID,
		schema.CorePlaylistVideo.Position)

	if _, err := repository.pool.Exec(context, query, playlistID, videoID); err != nil {
		return fmt.Errorf("postgres_playlist_repo_add_video_failed: %w", err)
	}

	return repository.touch(context, playlistID)
}

// RemoveVideo drops a video from the playlist.
func (repository *PostgresPlaylistRepository) RemoveVideo(context context.Context, playlistID, videoID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CorePlaylistVideo.Table,
		schema.CorePlaylistVideo.PlaylistID, schema.CorePlaylistVideo.VideoID)

	if _, err := repository.pool.Exec(context, query, playlistID, videoID); err != nil {
		return fmt.Errorf("postgres_playlist_repo_remove_video_failed: %w", err)
	}

	return repository.touch(context, playlistID)
}

// Update renames the playlist and replaces its description.
func (repository *PostgresPlaylistRepository) Update(context context.Context, id, name, description string) error {
	const query = `
		UPDATE core.playlist
		SET name = $2, description = $3, updatedat = now()
		WHERE id = $1`

	if _, err := repository.pool.Exec(context, query, id, name, description); err != nil {
		return fmt.Errorf("postgres_playlist_repo_update_failed: %w", err)
	}

	return nil
}

// Delete removes the playlist. Membership rows go with it via cascade.
func (repository *PostgresPlaylistRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CorePlaylist.Table, schema.CorePlaylist.ID)

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return fmt.Errorf("postgres_playlist_repo_delete_failed: %w", err)
	}

	return nil
}

// touch bumps the playlist's updatedat after a membership change.
func (repository *PostgresPlaylistRepository) touch(context context.Context, playlistID string) error {
	const query = `UPDATE core.playlist SET updatedat = now() WHERE id = $1`

	if _, err := repository.pool.Exec(context, query, playlistID); err != nil {
		return fmt.Errorf("postgres_playlist_repo_touch_failed: %w", err)
	}

	return nil
}
