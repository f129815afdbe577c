// Copyright (c) 2026 VideoTube. All rights reserved.

package subscriptions

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/videotube/videotube/internal/platform/database/schema"
)

// PostgresSubscriptionRepository implements the SubscriptionRepository interface using pgx.
type PostgresSubscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository creates a new PostgreSQL implementation of the SubscriptionRepository.
func NewSubscriptionRepository(pool *pgxpool.Pool) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{pool: pool}
}

/*
Toggle flips the user's subscription to a channel inside one transaction.

Parameters:
  - context: context.Context
  - channelID: string
  - subscriberID: string

Returns:
  - bool: true when the toggle resulted in a subscription
  - int: Channel subscriber count after the toggle
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresSubscriptionRepository) Toggle(context context.Context, channelID, subscriberID string) (bool, int, error) {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialSubscription.Table,
		schema.SocialSubscription.ChannelID, schema.SocialSubscription.SubscriberID)

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.SocialSubscription.Table,
		schema.SocialSubscription.SubscriberID, schema.SocialSubscription.ChannelID)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.SocialSubscription.Table, schema.SocialSubscription.ChannelID)

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return false, 0, fmt.Errorf("postgres_subscription_repo_toggle_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	tag, err := transaction.Exec(context, deleteQuery, channelID, subscriberID)
	if err != nil {
		return false, 0, fmt.Errorf("postgres_subscription_repo_toggle_delete_failed: %w", err)
	}

	subscribed := tag.RowsAffected() == 0
	if subscribed {
		if _, err := transaction.Exec(context, insertQuery, subscriberID, channelID); err != nil {
			return false, 0, fmt.Errorf("postgres_subscription_repo_toggle_insert_failed: %w", err)
		}
	}

	count := 0
	if err := transaction.QueryRow(context, countQuery, channelID).Scan(&count); err != nil {
		return false, 0, fmt.Errorf("postgres_subscription_repo_toggle_count_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return false, 0, fmt.Errorf("postgres_subscription_repo_toggle_commit_failed: %w", err)
	}

	return subscribed, count, nil
}

// Subscribers returns the accounts subscribed to a channel, each with
// the size of their own audience.
func (repository *PostgresSubscriptionRepository) Subscribers(context context.Context, channelID string) ([]Subscriber, error) {
	const query = `
		SELECT a.id, a.fullname, a.email, a.avatar, a.username,
		       (SELECT COUNT(*) FROM social.subscription s2 WHERE s2.channelid = a.id) AS subscriberscount
		FROM social.subscription s
		JOIN users.account a ON a.id = s.subscriberid
		WHERE s.channelid = $1
		ORDER BY s.createdat DESC`

	rows, err := repository.pool.Query(context, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("postgres_subscription_repo_subscribers_failed: %w", err)
	}
	defer rows.Close()

	subscribers := []Subscriber{}
	for rows.Next() {
		subscriber := Subscriber{}
		err := rows.Scan(
			&subscriber.SubscriberID,
			&subscriber.SubscriberDetails.FullName,
			&subscriber.SubscriberDetails.Email,
			&subscriber.SubscriberDetails.Avatar,
			&subscriber.SubscriberDetails.Username,
			&subscriber.SubscribersCount,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_subscription_repo_subscribers_scan_failed: %w", err)
		}
		subscribers = append(subscribers, subscriber)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_subscription_repo_subscribers_rows_failed: %w", err)
	}

	return subscribers, nil
}

// SubscribedChannels returns the channels a user is subscribed to, each
// with its subscriber count.
func (repository *PostgresSubscriptionRepository) SubscribedChannels(context context.Context, subscriberID string) ([]SubscribedChannel, error) {
	const query = `
		SELECT a.id, a.fullname, a.username, a.avatar,
		       (SELECT COUNT(*) FROM social.subscription s2 WHERE s2.channelid = a.id) AS subscriberscount
		FROM social.subscription s
		JOIN users.account a ON a.id = s.channelid
		WHERE s.subscriberid = $1
		ORDER BY s.createdat DESC`

	rows, err := repository.pool.Query(context, query, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("postgres_subscription_repo_channels_failed: %w", err)
	}
	defer rows.Close()

	channels := []SubscribedChannel{}
	for rows.Next() {
		channel := SubscribedChannel{}
		err := rows.Scan(
			&channel.ChannelDetails.ID,
			&channel.ChannelDetails.FullName,
			&channel.ChannelDetails.Username,
			&channel.ChannelDetails.Avatar,
			&channel.ChannelDetails.SubscribersCount,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_subscription_repo_channels_scan_failed: %w", err)
		}
		channel.ID = channel.ChannelDetails.ID
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_subscription_repo_channels_rows_failed: %w", err)
	}

	return channels, nil
}
