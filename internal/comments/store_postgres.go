// Copyright (c) 2026 VideoTube. All rights reserved.

package comments

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

// PostgresCommentRepository implements the CommentRepository interface using pgx.
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new PostgreSQL implementation of the CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

// Create persists a new comment into social.comment.
func (repository *PostgresCommentRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.SocialComment.Table,
		schema.SocialComment.ID, schema.SocialComment.VideoID, schema.SocialComment.OwnerID,
		schema.SocialComment.Content, schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt,
	)

	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		comment.ID,
		comment.VideoID,
		comment.OwnerID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}

	return nil
}

// FindByID returns the raw comment entity.
func (repository *PostgresCommentRepository) FindByID(context context.Context, id string) (*Comment, error) {
	const query = `
		SELECT id, videoid, ownerid, content, createdat, updatedat
		FROM social.comment
		WHERE id = $1`

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID,
		&comment.VideoID,
		&comment.OwnerID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment not found")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_failed: %w", err)
	}

	return comment, nil
}

// UpdateContent replaces the comment body and returns the updated entity.
func (repository *PostgresCommentRepository) UpdateContent(context context.Context, id, content string) (*Comment, error) {
	const query = `
		UPDATE social.comment
		SET content = $2, updatedat = now()
		WHERE id = $1
		RETURNING id, videoid, ownerid, content, createdat, updatedat`

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, id, content).Scan(
		&comment.ID,
		&comment.VideoID,
		&comment.OwnerID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment not found")
		}
		return nil, fmt.Errorf("postgres_comment_repo_update_failed: %w", err)
	}

	return comment, nil
}

// Delete removes the comment. Likes go with it via ON DELETE CASCADE.
func (repository *PostgresCommentRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialComment.Table, schema.SocialComment.ID)

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}

	return nil
}

/*
Thread returns one page of a video's comments, newest first.

Description: Each row carries its like count and whether the viewer liked
it. An empty viewerID (no viewer) yields isliked = false on every row via
NULLIF, without a separate query shape.

Parameters:
  - context: context.Context
  - videoID: string
  - viewerID: string
  - limit: int
  - offset: int

Returns:
  - []ThreadItem: Page of thread items
  - int: Total comment count for the video
  - error: Query failures
*/
func (repository *PostgresCommentRepository) Thread(context context.Context, videoID, viewerID string, limit, offset int) ([]ThreadItem, int, error) {
	const countQuery = `SELECT COUNT(*) FROM social.comment WHERE videoid = $1`

	total := 0
	if err := repository.pool.QueryRow(context, countQuery, videoID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_thread_count_failed: %w", err)
	}

	const pageQuery = `
		SELECT c.id, c.content, c.createdat, c.updatedat,
		       a.id, a.username, a.avatar,
		       (SELECT COUNT(*) FROM social.commentlike cl WHERE cl.commentid = c.id) AS likescount,
		       EXISTS (
		           SELECT 1 FROM social.commentlike cl
		           WHERE cl.commentid = c.id AND cl.likedby = NULLIF($2, '')::uuid
		       ) AS isliked
		FROM social.comment c
		JOIN users.account a ON a.id = c.ownerid
		WHERE c.videoid = $1
		ORDER BY c.createdat DESC
		LIMIT $3 OFFSET $4`

	rows, err := repository.pool.Query(context, pageQuery, videoID, viewerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_thread_failed: %w", err)
	}
	defer rows.Close()

	items := []ThreadItem{}
	for rows.Next() {
		item := ThreadItem{}
		err := rows.Scan(
			&item.ID,
			&item.Content,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.Owner.ID,
			&item.Owner.Username,
			&item.Owner.Avatar,
			&item.LikesCount,
			&item.IsLiked,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_comment_repo_thread_scan_failed: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_thread_rows_failed: %w", err)
	}

	return items, total, nil
}
