// Copyright (c) 2026 VideoTube. All rights reserved.

package likes

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/videotube/videotube/internal/platform/database/schema"
)

// PostgresLikeRepository implements the LikeRepository interface using pgx.
type PostgresLikeRepository struct {
	pool *pgxpool.Pool
}

// NewLikeRepository creates a new PostgreSQL implementation of the LikeRepository.
func NewLikeRepository(pool *pgxpool.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{pool: pool}
}

/*
ToggleVideoLike flips the user's like on a video inside one transaction.

Description: A delete that removes a row is an unlike. When nothing was
there to delete, a row is inserted instead. The returned count reflects
the state after the toggle.

Parameters:
  - context: context.Context
  - videoID: string
  - userID: string

Returns:
  - bool: true when the toggle resulted in a like
  - int: Like count after the toggle
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresLikeRepository) ToggleVideoLike(context context.Context, videoID, userID string) (bool, int, error) {
	return repository.toggle(context, "postgres_like_repo_video", toggleQueries{
		delete: fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
			schema.SocialVideoLike.Table, schema.SocialVideoLike.VideoID, schema.SocialVideoLike.LikedBy),
		insert: fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
			schema.SocialVideoLike.Table, schema.SocialVideoLike.VideoID, schema.SocialVideoLike.LikedBy),
		count: fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
			schema.SocialVideoLike.Table, schema.SocialVideoLike.VideoID),
	}, videoID, userID)
}

// ToggleCommentLike flips the user's like on a comment. Same shape as
// ToggleVideoLike against social.commentlike.
func (repository *PostgresLikeRepository) ToggleCommentLike(context context.Context, commentID, userID string) (bool, int, error) {
	return repository.toggle(context, "postgres_like_repo_comment", toggleQueries{
		delete: fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
			schema.SocialCommentLike.Table, schema.SocialCommentLike.CommentID, schema.SocialCommentLike.LikedBy),
		insert: fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
			schema.SocialCommentLike.Table, schema.SocialCommentLike.CommentID, schema.SocialCommentLike.LikedBy),
		count: fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
			schema.SocialCommentLike.Table, schema.SocialCommentLike.CommentID),
	}, commentID, userID)
}

// toggleQueries carries the per-table SQL for a like toggle.
type toggleQueries struct {
	delete string
	insert string
	count  string
}

func (repository *PostgresLikeRepository) toggle(context context.Context, action string, queries toggleQueries, targetID, userID string) (bool, int, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return false, 0, fmt.Errorf("%s_toggle_begin_failed: %w", action, err)
	}
	defer transaction.Rollback(context)

	tag, err := transaction.Exec(context, queries.delete, targetID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("%s_toggle_delete_failed: %w", action, err)
	}

	liked := tag.RowsAffected() == 0
	if liked {
		if _, err := transaction.Exec(context, queries.insert, targetID, userID); err != nil {
			return false, 0, fmt.Errorf("%s_toggle_insert_failed: %w", action, err)
		}
	}

	count := 0
	if err := transaction.QueryRow(context, queries.count, targetID).Scan(&count); err != nil {
		return false, 0, fmt.Errorf("%s_toggle_count_failed: %w", action, err)
	}

	if err := transaction.Commit(context); err != nil {
		return false, 0, fmt.Errorf("%s_toggle_commit_failed: %w", action, err)
	}

	return liked, count, nil
}

// LikedVideos returns the user's liked videos, most recent like first.
func (repository *PostgresLikeRepository) LikedVideos(context context.Context, userID string) ([]LikedVideoItem, error) {
	const query = `
		SELECT v.id, v.videofile, v.thumbnail, v.title, v.description,
		       v.duration, v.views, v.ispublished, v.createdat,
		       a.id, a.username, a.avatar,
		       (SELECT COUNT(*) FROM social.subscription s WHERE s.channelid = a.id) AS subscriberscount
		FROM social.videolike l
		JOIN core.video v ON v.id = l.videoid
		JOIN users.account a ON a.id = v.ownerid
		WHERE l.likedby = $1
		ORDER BY l.createdat DESC`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_like_repo_liked_videos_failed: %w", err)
	}
	defer rows.Close()

	items := []LikedVideoItem{}
	for rows.Next() {
		video := LikedVideo{}
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
			&video.Owner.Username,
			&video.Owner.Avatar,
			&video.Owner.SubscribersCount,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_like_repo_liked_videos_scan_failed: %w", err)
		}
		items = append(items, LikedVideoItem{ID: video.ID, Video: video})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_like_repo_liked_videos_rows_failed: %w", err)
	}

	return items, nil
}
