// Copyright (c) 2026 VideoTube. All rights reserved.

package videos

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

// PostgresVideoRepository implements the VideoRepository interface using pgx.
type PostgresVideoRepository struct {
	pool *pgxpool.Pool
}

// NewVideoRepository creates a new PostgreSQL implementation of the VideoRepository.
func NewVideoRepository(pool *pgxpool.Pool) *PostgresVideoRepository {
	return &PostgresVideoRepository{pool: pool}
}

// sortColumns whitelists the client-facing sort keys against real columns,
// so the dynamic ORDER BY can never smuggle SQL in.
var sortColumns = map[string]string{
	"createdAt": "v.createdat",
	"views":     "v.views",
	"duration":  "v.duration",
	"title":     "v.title",
}

/*
Create persists a freshly published video into core.video.

Parameters:
  - context: context.Context
  - video: *Video

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresVideoRepository) Create(context context.Context, video *Video) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.CoreVideo.Table,
		schema.CoreVideo.ID, schema.CoreVideo.OwnerID, schema.CoreVideo.VideoFile,
		schema.CoreVideo.Thumbnail, schema.CoreVideo.Title, schema.CoreVideo.Description,
		schema.CoreVideo.Duration, schema.CoreVideo.IsPublished,
		schema.CoreVideo.CreatedAt, schema.CoreVideo.UpdatedAt,
	)

	now := time.Now()
	if video.CreatedAt.IsZero() {
		video.CreatedAt = now
	}
	video.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		video.ID,
		video.OwnerID,
		video.VideoFile,
		video.Thumbnail,
		video.Title,
		video.Description,
		video.Duration,
		video.IsPublished,
		video.CreatedAt,
		video.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_video_repo_create_failed: %w", err)
	}

	return nil
}

// FindByID returns the raw catalog entity, published or not.
func (repository *PostgresVideoRepository) FindByID(context context.Context, id string) (*Video, error) {
	const query = `
		SELECT id, ownerid, videofile, thumbnail, title, description,
		       duration, views, ispublished, createdat, updatedat
		FROM core.video
		WHERE id = $1`

	video := &Video{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&video.ID,
		&video.OwnerID,
		&video.VideoFile,
		&video.Thumbnail,
		&video.Title,
		&video.Description,
		&video.Duration,
		&video.Views,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Video not found")
		}
		return nil, fmt.Errorf("postgres_video_repo_find_failed: %w", err)
	}

	return video, nil
}

// Update persists mutable fields of the catalog entity.
func (repository *PostgresVideoRepository) Update(context context.Context, video *Video) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1`,
		schema.CoreVideo.Table,
		schema.CoreVideo.Title, schema.CoreVideo.Description, schema.CoreVideo.Duration,
		schema.CoreVideo.Thumbnail, schema.CoreVideo.IsPublished, schema.CoreVideo.UpdatedAt,
		schema.CoreVideo.ID,
	)

	video.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		video.ID,
		video.Title,
		video.Description,
		video.Duration,
		video.Thumbnail,
		video.IsPublished,
		video.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_video_repo_update_failed: %w", err)
	}

	return nil
}

// Delete removes the video row; dependent rows cascade.
func (repository *PostgresVideoRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CoreVideo.Table, schema.CoreVideo.ID)

	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_video_repo_delete_failed: %w", err)
	}
	return nil
}

/*
List returns one page of the published feed plus the total match count.

Description: Text matching is case-insensitive on title and description.
The sort key is resolved through the [sortColumns] whitelist; unknown keys
fall back to newest-first.

Parameters:
  - context: context.Context
  - listQuery: ListQuery

Returns:
  - []VideoSummary: One page of feed items
  - int: Total matching videos
  - error: Execution errors
*/
func (repository *PostgresVideoRepository) List(context context.Context, listQuery ListQuery) ([]VideoSummary, int, error) {
	const filter = `
		WHERE v.ispublished = TRUE
		  AND ($1 = '' OR v.title ILIKE '%' || $1 || '%' OR v.description ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR v.ownerid = NULLIF($2, '')::uuid)`

	orderBy := "v.createdat DESC"
	if column, ok := sortColumns[listQuery.SortBy]; ok {
		direction := "ASC"
		if listQuery.SortType == "desc" {
			direction = "DESC"
		}
		orderBy = column + " " + direction
	}

	countQuery := "SELECT COUNT(*) FROM core.video v" + filter

	var total int
	err := repository.pool.QueryRow(context, countQuery, listQuery.Query, listQuery.UserID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_video_repo_list_count_failed: %w", err)
	}

	pageQuery := fmt.Sprintf(`
		SELECT
			v.id, v.videofile, v.thumbnail, v.title, v.description,
			v.duration, v.views, v.createdat,
			(SELECT COUNT(*) FROM social.videolike l WHERE l.videoid = v.id) AS likescount,
			o.id, o.username, o.avatar,
			(SELECT COUNT(*) FROM social.subscription s WHERE s.channelid = o.id) AS subscriberscount
		FROM core.video v
		JOIN users.account o ON o.id = v.ownerid
		%s
		ORDER BY %s
		LIMIT $3 OFFSET $4`, filter, orderBy)

	offset := 0
	if listQuery.Page > 1 {
		offset = (listQuery.Page - 1) * listQuery.Limit
	}

	rows, err := repository.pool.Query(context, pageQuery,
		listQuery.Query, listQuery.UserID, listQuery.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_video_repo_list_failed: %w", err)
	}
	defer rows.Close()

	summaries := []VideoSummary{}
	for rows.Next() {
		var summary VideoSummary
		err := rows.Scan(
			&summary.ID,
			&summary.VideoFile,
			&summary.Thumbnail,
			&summary.Title,
			&summary.Description,
			&summary.Duration,
			&summary.Views,
			&summary.CreatedAt,
			&summary.LikesCount,
			&summary.Owner.ID,
			&summary.Owner.Username,
			&summary.Owner.Avatar,
			&summary.Owner.SubscribersCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_video_repo_list_scan_failed: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_video_repo_list_rows_failed: %w", err)
	}

	return summaries, total, nil
}

/*
Detail returns the watch-page read model for one video.

Description: Resolves like count, the viewer's like state, the owner's
subscriber count, and the viewer's subscription state in a single query.
viewerID collapses to NULL when empty, so both EXISTS checks yield false
for anonymous viewers.

Parameters:
  - context: context.Context
  - videoID: string
  - viewerID: string

Returns:
  - *VideoDetail: Aggregated watch-page view
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresVideoRepository) Detail(context context.Context, videoID, viewerID string) (*VideoDetail, error) {
	const query = `
		SELECT
			v.id, v.videofile, v.thumbnail, v.title, v.description,
			v.duration, v.views, v.ispublished, v.createdat, v.updatedat,
			(SELECT COUNT(*) FROM social.videolike l WHERE l.videoid = v.id) AS likescount,
			EXISTS (
				SELECT 1 FROM social.videolike l
				WHERE l.videoid = v.id AND l.likedby = NULLIF($2, '')::uuid
			) AS isliked,
			o.id, o.username, o.avatar,
			(SELECT COUNT(*) FROM social.subscription s WHERE s.channelid = o.id) AS subscriberscount,
			EXISTS (
				SELECT 1 FROM social.subscription s
				WHERE s.channelid = o.id AND s.subscriberid = NULLIF($2, '')::uuid
			) AS issubscribed
		FROM core.video v
		JOIN users.account o ON o.id = v.ownerid
		WHERE v.id = $1`

	detail := &VideoDetail{}
	err := repository.pool.QueryRow(context, query, videoID, viewerID).Scan(
		&detail.ID,
		&detail.VideoFile,
		&detail.Thumbnail,
		&detail.Title,
		&detail.Description,
		&detail.Duration,
		&detail.Views,
		&detail.IsPublished,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.LikesCount,
		&detail.IsLiked,
		&detail.Owner.ID,
		&detail.Owner.Username,
		&detail.Owner.Avatar,
		&detail.Owner.SubscribersCount,
		&detail.Owner.IsSubscribed,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Video not found")
		}
		return nil, fmt.Errorf("postgres_video_repo_detail_failed: %w", err)
	}

	return detail, nil
}

// Search returns lightweight suggestions for the search box, newest first.
func (repository *PostgresVideoRepository) Search(context context.Context, query string, limit int) ([]SearchSuggestion, error) {
	const searchQuery = `
		SELECT id, title, thumbnail, description
		FROM core.video
		WHERE ispublished = TRUE
		  AND (title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY createdat DESC
		LIMIT $2`

	rows, err := repository.pool.Query(context, searchQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_video_repo_search_failed: %w", err)
	}
	defer rows.Close()

	suggestions := []SearchSuggestion{}
	for rows.Next() {
		var suggestion SearchSuggestion
		if err := rows.Scan(&suggestion.ID, &suggestion.Title, &suggestion.Thumbnail, &suggestion.Description); err != nil {
			return nil, fmt.Errorf("postgres_video_repo_search_scan_failed: %w", err)
		}
		suggestions = append(suggestions, suggestion)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_video_repo_search_rows_failed: %w", err)
	}

	return suggestions, nil
}

/*
Related returns published videos matching a title-word regex pattern.

Description: The pattern is built by the service from the source video's
significant title words and applied case-insensitively (~*) to titles and
descriptions, excluding the source video itself.

Parameters:
  - context: context.Context
  - excludeID: string
  - pattern: string (POSIX regex alternation)
  - limit: int

Returns:
  - []RelatedVideo: Sidebar cards
  - error: Execution errors
*/
func (repository *PostgresVideoRepository) Related(context context.Context, excludeID, pattern string, limit int) ([]RelatedVideo, error) {
	const query = `
		SELECT
			v.id, v.thumbnail, v.title, v.views, v.duration, v.createdat,
			o.username, o.avatar,
			(SELECT COUNT(*) FROM social.subscription s WHERE s.channelid = o.id) AS subscriberscount
		FROM core.video v
		JOIN users.account o ON o.id = v.ownerid
		WHERE v.id <> $1
		  AND v.ispublished = TRUE
		  AND (v.title ~* $2 OR v.description ~* $2)
		LIMIT $3`

	rows, err := repository.pool.Query(context, query, excludeID, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_video_repo_related_failed: %w", err)
	}
	defer rows.Close()

	related := []RelatedVideo{}
	for rows.Next() {
		var video RelatedVideo
		err := rows.Scan(
			&video.ID,
			&video.Thumbnail,
			&video.Title,
			&video.Views,
			&video.Duration,
			&video.CreatedAt,
			&video.Owner.Username,
			&video.Owner.Avatar,
			&video.Owner.SubscribersCount,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_video_repo_related_scan_failed: %w", err)
		}
		related = append(related, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_video_repo_related_rows_failed: %w", err)
	}

	return related, nil
}

// IncrementViews bumps the view counter by one.
func (repository *PostgresVideoRepository) IncrementViews(context context.Context, videoID string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = %s + 1 WHERE %s = $1",
		schema.CoreVideo.Table, schema.CoreVideo.Views, schema.CoreVideo.Views, schema.CoreVideo.ID)

	_, err := repository.pool.Exec(context, query, videoID)
	if err != nil {
		return fmt.Errorf("postgres_video_repo_increment_views_failed: %w", err)
	}
	return nil
}

// HasWatched reports whether the video is already in the user's history.
func (repository *PostgresVideoRepository) HasWatched(context context.Context, userID, videoID string) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)",
		schema.UserWatchHistory.Table, schema.UserWatchHistory.UserID, schema.UserWatchHistory.VideoID)

	var watched bool
	if err := repository.pool.QueryRow(context, query, userID, videoID).Scan(&watched); err != nil {
		return false, fmt.Errorf("postgres_video_repo_has_watched_failed: %w", err)
	}

	return watched, nil
}

// AddToWatchHistory records the video in the user's history, once.
func (repository *PostgresVideoRepository) AddToWatchHistory(context context.Context, userID, videoID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO NOTHING`,
		schema.UserWatchHistory.Table,
		schema.UserWatchHistory.UserID, schema.UserWatchHistory.VideoID, schema.UserWatchHistory.WatchedAt,
		schema.UserWatchHistory.UserID, schema.UserWatchHistory.VideoID,
	)

	_, err := repository.pool.Exec(context, query, userID, videoID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_video_repo_add_history_failed: %w", err)
	}
	return nil
}
