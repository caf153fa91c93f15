package session

// AvailabilitySet は確保済み座席の集合を内部識別子で保持する。
// 取り込みはマージのみで、一度確保済みになった座席が
// 同期によって解放表示に戻ることはない。
type AvailabilitySet struct {
	taken map[string]struct{}
}

// NewAvailabilitySet は空の集合を作る
func NewAvailabilitySet() *AvailabilitySet {
	return &AvailabilitySet{taken: make(map[string]struct{})}
}

// Merge は確保済み座席を追加する
func (a *AvailabilitySet) Merge(ids ...string) {
	for _, id := range ids {
		a.taken[id] = struct{}{}
	}
}

// IsTaken は座席が確保済みかを返す
func (a *AvailabilitySet) IsTaken(id string) bool {
	_, ok := a.taken[id]
	return ok
}

// Len は確保済み座席数を返す
func (a *AvailabilitySet) Len() int {
	return len(a.taken)
}

// Snapshot は確保済み座席の内部識別子一覧を返す。順序は不定。
func (a *AvailabilitySet) Snapshot() []string {
	out := make([]string, 0, len(a.taken))
	for id := range a.taken {
		out = append(out, id)
	}
	return out
}
