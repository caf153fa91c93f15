package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrSeatLocked   = errors.New("座席ロックを取得できませんでした")
	ErrLockNotOwned = errors.New("ロックの所有者ではありません")
)

// releaseScript は所有者確認と削除をアトミックに実行する
const releaseScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`

// SeatLockManager は複数インスタンス間のホールド調停に使う
// 座席単位の分散ロックを管理する
type SeatLockManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSeatLockManager はSeatLockManagerを作成する
func NewSeatLockManager(client *redis.Client, ttl time.Duration) *SeatLockManager {
	return &SeatLockManager{client: client, ttl: ttl}
}

// SeatLocks は取得済みの座席ロック一式
type SeatLocks struct {
	client *redis.Client
	keys   []string
	token  string
}

func seatLockKey(matchID, seatID string) string {
	return fmt.Sprintf("seatlock:%s:%s", matchID, seatID)
}

// AcquireSeats は対象座席のロックを一括取得する。
// デッドロック回避のためキー順に取得し、1席でも失敗したら
// 取得済みをすべて解放して ErrSeatLocked を返す。
func (m *SeatLockManager) AcquireSeats(ctx context.Context, matchID string, seatIDs []string) (*SeatLocks, error) {
	token := uuid.New().String()

	keys := make([]string, len(seatIDs))
	for i, id := range seatIDs {
		keys[i] = seatLockKey(matchID, id)
	}
	sort.Strings(keys)

	locks := &SeatLocks{client: m.client, token: token}
	for _, key := range keys {
		ok, err := m.client.SetNX(ctx, key, token, m.ttl).Result()
		if err != nil {
			_ = locks.Release(ctx)
			return nil, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		if !ok {
			_ = locks.Release(ctx)
			return nil, fmt.Errorf("%w: %s", ErrSeatLocked, key)
		}
		locks.keys = append(locks.keys, key)
	}
	return locks, nil
}

// Release は取得済みロックをすべて解放する
func (l *SeatLocks) Release(ctx context.Context) error {
	var firstErr error
	for _, key := range l.keys {
		result, err := l.client.Eval(ctx, releaseScript, []string{key}, l.token).Int()
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("ロック解放に失敗: %w", err)
			}
			continue
		}
		if result == 0 && firstErr == nil {
			firstErr = ErrLockNotOwned
		}
	}
	l.keys = nil
	return firstErr
}
