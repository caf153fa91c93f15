package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
)

type seatHold struct {
	userID    string
	status    HoldStatus
	sectionID string
	expiresAt time.Time
}

type matchState struct {
	seats        map[string]*seatHold
	participants map[string]struct{}
	confirmed    []string
}

// MemoryStore はプロセス内の占有ストア。
// テストと単体起動の既定実装で、mutex による直列化で調停する。
type MemoryStore struct {
	mu      sync.Mutex
	matches map[string]*matchState
	now     func() time.Time
}

// NewMemoryStore はメモリストアを作る
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		matches: make(map[string]*matchState),
		now:     time.Now,
	}
}

func (s *MemoryStore) match(matchID string) *matchState {
	m, ok := s.matches[matchID]
	if !ok {
		m = &matchState{
			seats:        make(map[string]*seatHold),
			participants: make(map[string]struct{}),
		}
		s.matches[matchID] = m
	}
	return m
}

func (h *seatHold) expired(now time.Time) bool {
	return h.status == HoldStatusHeld && now.After(h.expiresAt)
}

func (s *MemoryStore) SectionStatuses(_ context.Context, matchID, sectionID string) ([]SeatState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[matchID]
	if !ok {
		return nil, nil
	}

	now := s.now()
	var states []SeatState
	for id, h := range m.seats {
		if h.sectionID != sectionID || h.expired(now) {
			continue
		}
		states = append(states, SeatState{SeatID: id, UserID: h.userID, Status: h.status})
	}
	sort.Slice(states, func(i, j int) bool { return states[i].SeatID < states[j].SeatID })
	return states, nil
}

func (s *MemoryStore) Hold(_ context.Context, matchID, userID string, seatIDs []string, ttl time.Duration) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.match(matchID)
	m.participants[userID] = struct{}{}
	now := s.now()

	// 全量判定。1席でも他者が押さえていれば何も確保しない
	var failed []string
	for _, id := range seatIDs {
		if h, ok := m.seats[id]; ok && h.userID != userID && !h.expired(now) {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}

	// 同一利用者の既存ホールドを置き換える
	for id, h := range m.seats {
		if h.userID == userID && h.status == HoldStatusHeld {
			delete(m.seats, id)
		}
	}

	for _, id := range seatIDs {
		ref, err := seat.ParseWireID(id)
		if err != nil {
			return nil, fmt.Errorf("座席識別子が不正です: %w", err)
		}
		m.seats[id] = &seatHold{
			userID:    userID,
			status:    HoldStatusHeld,
			sectionID: ref.SectionID,
			expiresAt: now.Add(ttl),
		}
	}
	return nil, nil
}

func (s *MemoryStore) Confirm(_ context.Context, matchID, userID string) (ConfirmOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[matchID]
	if !ok {
		return ConfirmOutcome{}, ErrNothingHeld
	}

	for _, u := range m.confirmed {
		if u == userID {
			return ConfirmOutcome{}, ErrAlreadyConfirmed
		}
	}

	now := s.now()
	var seats []string
	for id, h := range m.seats {
		if h.userID == userID && h.status == HoldStatusHeld && !h.expired(now) {
			seats = append(seats, id)
		}
	}
	if len(seats) == 0 {
		return ConfirmOutcome{}, ErrNothingHeld
	}
	sort.Strings(seats)

	for _, id := range seats {
		m.seats[id].status = HoldStatusConfirmed
	}
	m.confirmed = append(m.confirmed, userID)

	return ConfirmOutcome{
		Seats:     seats,
		UserRank:  len(m.confirmed),
		TotalRank: len(m.participants),
	}, nil
}

func (s *MemoryStore) Release(_ context.Context, matchID, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[matchID]
	if !ok {
		return 0, nil
	}

	released := 0
	for id, h := range m.seats {
		if h.userID == userID && h.status == HoldStatusHeld {
			delete(m.seats, id)
			released++
		}
	}
	return released, nil
}

func (s *MemoryStore) ReleaseExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	released := 0
	for _, m := range s.matches {
		for id, h := range m.seats {
			if h.expired(now) {
				delete(m.seats, id)
				released++
			}
		}
	}
	return released, nil
}

var _ Store = (*MemoryStore)(nil)
