// Copyright (c) 2026 VideoTube. All rights reserved.

package dashboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStatsRepository implements the StatsRepository interface using pgx.
type PostgresStatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new PostgreSQL implementation of the StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) *PostgresStatsRepository {
	return &PostgresStatsRepository{pool: pool}
}

/*
Stats aggregates the channel's totals in a single round trip.

Description: Comment and like totals count engagement ON the channel's
videos, not activity BY the channel.

Parameters:
  - context: context.Context
  - channelID: string

Returns:
  - *Stats: Aggregated totals
  - error: Query failures
*/
func (repository *PostgresStatsRepository) Stats(context context.Context, channelID string) (*Stats, error) {
	const query = `
		SELECT
		    (SELECT COUNT(*) FROM core.video v WHERE v.ownerid = $1) AS totalvideos,
		    (SELECT COALESCE(SUM(v.views), 0) FROM core.video v WHERE v.ownerid = $1) AS totalviews,
		    (SELECT COUNT(*) FROM social.subscription s WHERE s.channelid = $1) AS totalsubscribers,
		    (SELECT COUNT(*) FROM social.comment c
		     JOIN core.video v ON v.id = c.videoid
		     WHERE v.ownerid = $1) AS totalcomments,
		    (SELECT COUNT(*) FROM social.videolike l
		     JOIN core.video v ON v.id = l.videoid
		     WHERE v.ownerid = $1) AS totallikes`

	stats := &Stats{}
	err := repository.pool.QueryRow(context, query, channelID).Scan(
		&stats.TotalVideos,
		&stats.TotalViews,
		&stats.TotalSubscribers,
		&stats.TotalComments,
		&stats.TotalLikes,
	)

	if err != nil {
		return nil, fmt.Errorf("postgres_stats_repo_stats_failed: %w", err)
	}

	return stats, nil
}

// ChannelVideos returns the channel's videos with engagement counts,
// newest first.
func (repository *PostgresStatsRepository) ChannelVideos(context context.Context, channelID string) ([]ChannelVideo, error) {
	const query = `
		SELECT v.id, v.ownerid, v.videofile, v.thumbnail, v.title, v.description,
		       v.duration, v.views, v.ispublished, v.createdat, v.updatedat,
		       (SELECT COUNT(*) FROM social.videolike l WHERE l.videoid = v.id) AS likescount,
		       (SELECT COUNT(*) FROM social.comment c WHERE c.videoid = v.id) AS commentscount
		FROM core.video v
		WHERE v.ownerid = $1
		ORDER BY v.createdat DESC`

	rows, err := repository.pool.Query(context, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("postgres_stats_repo_videos_failed: %w", err)
	}
	defer rows.Close()

	videos := []ChannelVideo{}
	for rows.Next() {
		video := ChannelVideo{}
		err := rows.Scan(
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
			&video.LikesCount,
			&video.CommentsCount,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_stats_repo_videos_scan_failed: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_stats_repo_videos_rows_failed: %w", err)
	}

	return videos, nil
}
