// Copyright (c) 2026 VideoTube. All rights reserved.

package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/videotube/videotube/internal/platform/constants"
)

// RedisCooldownRepository implements CooldownRepository using Redis TTL keys.
type RedisCooldownRepository struct {
	client *redis.Client
}

// NewCooldownRepository creates a new Redis-backed CooldownRepository.
func NewCooldownRepository(client *redis.Client) *RedisCooldownRepository {
	return &RedisCooldownRepository{client: client}
}

/*
AcquireResendSlot attempts to claim the resend-verification window for an email.

Description: Uses SET NX so the first caller within the window wins and every
later caller is refused until the key expires. The claim and the TTL are set
atomically, a crash cannot leave a permanent lock.

Parameters:
  - context: context.Context
  - email: string
  - ttl: time.Duration

Returns:
  - bool: True when the caller may send another verification mail
  - error: Connectivity errors
*/
func (repository *RedisCooldownRepository) AcquireResendSlot(context context.Context, email string, ttl time.Duration) (bool, error) {
	key := constants.RedisPrefixResendCooldown + strings.ToLower(email)

	acquired, err := repository.client.SetNX(context, key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_cooldown_acquire_failed: %w", err)
	}

	return acquired, nil
}
