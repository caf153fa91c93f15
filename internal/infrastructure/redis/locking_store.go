package redis

import (
	"context"
	"errors"
	"time"

	"github.com/tickget/go-seatmap-engine/internal/server/store"
)

// LockingStore は占有ストアを座席ロックで包むデコレータ。
// 複数インスタンスで同じ永続ストアを共有するとき、ホールドの
// 全量判定を座席単位のロックで直列化する。
type LockingStore struct {
	inner store.Store
	locks *SeatLockManager
}

// NewLockingStore はLockingStoreを作成する
func NewLockingStore(inner store.Store, locks *SeatLockManager) *LockingStore {
	return &LockingStore{inner: inner, locks: locks}
}

func (s *LockingStore) SectionStatuses(ctx context.Context, matchID, sectionID string) ([]store.SeatState, error) {
	return s.inner.SectionStatuses(ctx, matchID, sectionID)
}

// Hold は対象座席をロックしてから下位ストアに委譲する。
// ロックが取れない座席は競合として返す。
func (s *LockingStore) Hold(ctx context.Context, matchID, userID string, seatIDs []string, ttl time.Duration) ([]string, error) {
	acquired, err := s.locks.AcquireSeats(ctx, matchID, seatIDs)
	if err != nil {
		if errors.Is(err, ErrSeatLocked) {
			// 同時要求が同じ座席を狙っている。全量拒否で返す
			return seatIDs, nil
		}
		return nil, err
	}
	defer func() { _ = acquired.Release(ctx) }()

	return s.inner.Hold(ctx, matchID, userID, seatIDs, ttl)
}

func (s *LockingStore) Confirm(ctx context.Context, matchID, userID string) (store.ConfirmOutcome, error) {
	return s.inner.Confirm(ctx, matchID, userID)
}

func (s *LockingStore) Release(ctx context.Context, matchID, userID string) (int, error) {
	return s.inner.Release(ctx, matchID, userID)
}

func (s *LockingStore) ReleaseExpired(ctx context.Context) (int, error) {
	return s.inner.ReleaseExpired(ctx)
}

var _ store.Store = (*LockingStore)(nil)
