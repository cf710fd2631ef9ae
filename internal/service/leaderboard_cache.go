package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dsp4life2020-woodz/trippintv/internal/client"
	"github.com/dsp4life2020-woodz/trippintv/internal/contest"
	"github.com/sirupsen/logrus"
)

const leaderboardTTL = time.Minute

// leaderboardCache is a cache-aside layer over computed leaderboards.
// Cache failures are logged and treated as misses.
type leaderboardCache struct {
	cache client.CacheClient
}

func newLeaderboardCache(cache client.CacheClient) *leaderboardCache {
	return &leaderboardCache{cache: cache}
}

func leaderboardKey(w contest.Window) string {
	key := w.Key()
	return fmt.Sprintf("leaderboard:%d:%d", key.Year, key.Week)
}

func (l *leaderboardCache) get(ctx context.Context, w contest.Window) (contest.Leaderboard, bool) {
	data, ok, err := l.cache.Get(ctx, leaderboardKey(w))
	if err != nil {
		logrus.Warnf("leaderboard cache read failed: %v", err)
		return contest.Leaderboard{}, false
	}
	if !ok {
		return contest.Leaderboard{}, false
	}

	var board contest.Leaderboard
	if err := json.Unmarshal(data, &board); err != nil {
		logrus.Warnf("leaderboard cache entry %s is corrupt: %v", leaderboardKey(w), err)
		return contest.Leaderboard{}, false
	}
	return board, true
}

func (l *leaderboardCache) put(ctx context.Context, w contest.Window, board contest.Leaderboard) {
	data, err := json.Marshal(board)
	if err != nil {
		logrus.Warnf("leaderboard encode failed: %v", err)
		return
	}
	if err := l.cache.Set(ctx, leaderboardKey(w), data, leaderboardTTL); err != nil {
		logrus.Warnf("leaderboard cache write failed: %v", err)
	}
}

func (l *leaderboardCache) invalidate(ctx context.Context, w contest.Window) {
	if err := l.cache.Delete(ctx, leaderboardKey(w)); err != nil {
		logrus.Warnf("leaderboard cache invalidation failed: %v", err)
	}
}
