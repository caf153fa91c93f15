package session

import (
	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
)

// DefaultSelectionCap は一度に選択できる座席数の既定値
const DefaultSelectionCap = 2

// SelectionSet は選択中の座席を選択順で保持する。
// 上限は会場や公演ごとに設定できる。
type SelectionSet struct {
	cap   int
	order []seat.Seat
	index map[string]int
}

// NewSelectionSet は指定上限の選択集合を作る。
// capacity が0以下なら既定値を使う。
func NewSelectionSet(capacity int) *SelectionSet {
	if capacity <= 0 {
		capacity = DefaultSelectionCap
	}
	return &SelectionSet{
		cap:   capacity,
		index: make(map[string]int),
	}
}

// Cap は選択上限を返す
func (s *SelectionSet) Cap() int {
	return s.cap
}

// Len は選択中の座席数を返す
func (s *SelectionSet) Len() int {
	return len(s.order)
}

// Full は上限に達しているかを返す
func (s *SelectionSet) Full() bool {
	return len(s.order) >= s.cap
}

// Contains は座席が選択中かを返す
func (s *SelectionSet) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Add は座席を選択に加える。上限超過は ErrSelectionFull。
// 既に選択済みなら何もしない。
func (s *SelectionSet) Add(st seat.Seat) error {
	id := st.ID()
	if _, ok := s.index[id]; ok {
		return nil
	}
	if s.Full() {
		return ErrSelectionFull
	}
	s.index[id] = len(s.order)
	s.order = append(s.order, st)
	return nil
}

// Remove は座席を選択から外す。未選択なら false を返す。
func (s *SelectionSet) Remove(id string) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}
	s.order = append(s.order[:pos], s.order[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.order); i++ {
		s.index[s.order[i].ID()] = i
	}
	return true
}

// Clear は選択をすべて解除し、解除した座席を返す
func (s *SelectionSet) Clear() []seat.Seat {
	cleared := s.order
	s.order = nil
	s.index = make(map[string]int)
	return cleared
}

// Seats は選択順の座席一覧のコピーを返す
func (s *SelectionSet) Seats() []seat.Seat {
	out := make([]seat.Seat, len(s.order))
	copy(out, s.order)
	return out
}

// Sections は選択中の座席が属する区域IDを重複なしで返す
func (s *SelectionSet) Sections() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, st := range s.order {
		if _, ok := seen[st.SectionID]; ok {
			continue
		}
		seen[st.SectionID] = struct{}{}
		out = append(out, st.SectionID)
	}
	return out
}
