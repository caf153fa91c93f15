package session

import (
	"fmt"
	"sync"

	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
	"github.com/tickget/go-seatmap-engine/internal/domain/venue"
)

// Session は1ユーザーの座席選択セッションを表す。
// 会場のグリッド実体化結果、確保済み座席の集合、選択中の
// 座席をまとめて保持し、並行アクセスから保護する。
type Session struct {
	MatchID string
	UserID  string

	mu    sync.Mutex
	venue *venue.Venue
	grids map[string]*venue.Grid
	avail *AvailabilitySet
	sel   *SelectionSet

	// corrective はホールド拒否後の是正再同期が未完了の区域。
	// 完了するまでその区域の座席は再選択できない。
	corrective map[string]struct{}

	readOnly bool

	// displayed は閲覧専用モードで「選択済み」として描画する
	// 外部から与えられた座席。比較表示用で、選択操作とは独立。
	displayed  []string
	displaySet map[string]struct{}
}

// New はセッションを作る。コンパクト会場は全区域を先に実体化する。
func New(matchID, userID string, v *venue.Venue, selectionCap int) (*Session, error) {
	s := &Session{
		MatchID:    matchID,
		UserID:     userID,
		venue:      v,
		grids:      make(map[string]*venue.Grid),
		avail:      NewAvailabilitySet(),
		sel:        NewSelectionSet(selectionCap),
		corrective: make(map[string]struct{}),
	}
	if v.Compact {
		for i := range v.Sections {
			grid, err := venue.Materialize(v, &v.Sections[i])
			if err != nil {
				return nil, err
			}
			s.grids[v.Sections[i].ID] = grid
		}
	}
	return s, nil
}

// Venue はこのセッションの会場定義を返す
func (s *Session) Venue() *venue.Venue {
	return s.venue
}

// SetReadOnly は閲覧専用モードを切り替える
func (s *Session) SetReadOnly(ro bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readOnly = ro
}

// ReadOnly は閲覧専用モードかを返す
func (s *Session) ReadOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readOnly
}

// SetDisplayedSelection は閲覧専用モードで選択済みとして描画する
// 座席識別子を差し替える。呼ぶたびに前回の内容は破棄される。
func (s *Session) SetDisplayedSelection(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayed = append([]string(nil), ids...)
	s.displaySet = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.displaySet[id] = struct{}{}
	}
}

// Displayed は座席が外部指定の選択済み表示に含まれるかを返す
func (s *Session) Displayed(seatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.displaySet[seatID]
	return ok
}

// DisplayedSelection は外部指定の選択済み座席を指定順で返す
func (s *Session) DisplayedSelection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.displayed...)
}

// EnterSection は区域のグリッドを返す。初回は実体化する。
func (s *Session) EnterSection(sectionID string) (*venue.Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gridLocked(sectionID)
}

func (s *Session) gridLocked(sectionID string) (*venue.Grid, error) {
	if g, ok := s.grids[sectionID]; ok {
		return g, nil
	}
	sec, err := s.venue.Section(sectionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSectionUnknown, sectionID)
	}
	g, err := venue.Materialize(s.venue, sec)
	if err != nil {
		return nil, err
	}
	s.grids[sectionID] = g
	return g, nil
}

// Toggle は座席の選択状態を反転する。
// 解除は常に成功するが、追加は確保済み・上限到達・是正再同期中の
// いずれかで拒否される。戻り値は追加されたかどうか。
func (s *Session) Toggle(sectionID, seatID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return false, ErrReadOnly
	}
	grid, err := s.gridLocked(sectionID)
	if err != nil {
		return false, err
	}
	st, ok := grid.SeatByID(seatID)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrSeatUnknown, seatID)
	}

	if s.sel.Contains(seatID) {
		s.sel.Remove(seatID)
		return false, nil
	}
	if _, pending := s.corrective[sectionID]; pending {
		return false, ErrSyncOutstanding
	}
	if s.avail.IsTaken(seatID) {
		return false, ErrSeatUnavailable
	}
	if err := s.sel.Add(*st); err != nil {
		return false, err
	}
	return true, nil
}

// Selection は選択中の座席を選択順で返す
func (s *Session) Selection() []seat.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Seats()
}

// SelectionCap は選択上限を返す
func (s *Session) SelectionCap() int {
	return s.sel.Cap()
}

// SelectedSections は選択中の座席が属する区域IDを返す
func (s *Session) SelectedSections() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Sections()
}

// ClearSelection は選択をすべて解除する
func (s *Session) ClearSelection() []seat.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Clear()
}

// IsTaken は内部識別子の座席が確保済みかを返す
func (s *Session) IsTaken(seatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.avail.IsTaken(seatID)
}

// TakenCount は確保済みとして把握している座席数を返す
func (s *Session) TakenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.avail.Len()
}

// ApplyStatuses はAPIの座席状況を区域へ取り込む。
// 通信用識別子を内部識別子へ解決してから確保集合にマージし、
// 確保済みになった選択中の座席を自動的に外して返す。
// グリッドに解決できない識別子は読み飛ばす。
func (s *Session) ApplyStatuses(sectionID string, entries []seat.StatusEntry) ([]seat.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	grid, err := s.gridLocked(sectionID)
	if err != nil {
		return nil, err
	}

	var taken []string
	for _, e := range entries {
		if !e.Status.Occupied() {
			continue
		}
		st, ok := grid.SeatByWireID(e.SeatID)
		if !ok {
			continue
		}
		taken = append(taken, st.ID())
	}
	s.avail.Merge(taken...)

	var removed []seat.Seat
	for _, st := range s.sel.Seats() {
		if s.avail.IsTaken(st.ID()) {
			s.sel.Remove(st.ID())
			removed = append(removed, st)
		}
	}
	return removed, nil
}

// MarkCorrective は区域を是正再同期待ちにする
func (s *Session) MarkCorrective(sectionIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range sectionIDs {
		s.corrective[id] = struct{}{}
	}
}

// ClearCorrective は区域の是正再同期待ちを解除する
func (s *Session) ClearCorrective(sectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.corrective, sectionID)
}

// CorrectivePending は区域が是正再同期待ちかを返す
func (s *Session) CorrectivePending(sectionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.corrective[sectionID]
	return ok
}
