package seat

import (
	"fmt"
	"strconv"
	"strings"
)

// Status はAPIが返す座席の占有状態を表す
type Status string

const (
	StatusAvailable  Status = "AVAILABLE"
	StatusTaken      Status = "TAKEN"
	StatusMyReserved Status = "MY_RESERVED"
)

// Occupied は他者から見て選択不可能な状態かを返す。
// MY_RESERVED も表示上はTAKENと同じ扱いになる。
func (s Status) Occupied() bool {
	return s == StatusTaken || s == StatusMyReserved
}

// Seat は実体化済みの一座席を表す。
// Row・Col はグリッド上の1始まり座標、SeatInRow は同じ列内で
// 着席可能セルのみを数えた席番号を指す。
type Seat struct {
	SectionID string
	Row       int
	Col       int
	SeatInRow int
	Grade     Grade

	// コンパクト会場ではフロア付きの長い識別子を使う
	Compact  bool
	VenueTag string
	Floor    int
}

// ID はエンジン内部で使う座席識別子を返す。
// 通常会場は {区域}-{列}-{席番号}、コンパクト会場は
// {タグ}-{フロア}-{区域}-{列}-{カラム} 形式になる。
func (s Seat) ID() string {
	if s.Compact {
		return fmt.Sprintf("%s-%d-%s-%d-%d", s.VenueTag, s.Floor, s.SectionID, s.Row, s.Col)
	}
	return fmt.Sprintf("%s-%d-%d", s.SectionID, s.Row, s.SeatInRow)
}

// WireID はチケッティングAPIとの通信で使う識別子を返す。
// 席番号ではなくグリッドのカラム位置で表現する。
func (s Seat) WireID() string {
	return fmt.Sprintf("%s-%d-%d", s.SectionID, s.Row, s.Col)
}

// Label は利用者向けの座席表示名を返す
func (s Seat) Label() string {
	return fmt.Sprintf("%s구역-%d열-%d번", s.SectionID, s.Row, s.SeatInRow)
}

// WireRef はAPIに渡す座席参照を表す
type WireRef struct {
	SectionID string
	Row       int
	Col       int
	Grade     Grade
}

// WireRef はAPIに渡す形式の参照を返す
func (s Seat) WireRef() WireRef {
	return WireRef{
		SectionID: s.SectionID,
		Row:       s.Row,
		Col:       s.Col,
		Grade:     s.Grade,
	}
}

// ParseWireID は {区域}-{列}-{カラム} 形式の識別子を分解する。
// 区域IDにハイフンが含まれる場合は末尾2要素を座標として扱う。
func ParseWireID(id string) (WireRef, error) {
	parts := strings.Split(id, "-")
	if len(parts) < 3 {
		return WireRef{}, fmt.Errorf("%w: %q", ErrInvalidSeatID, id)
	}
	row, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return WireRef{}, fmt.Errorf("%w: %q", ErrInvalidSeatID, id)
	}
	col, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return WireRef{}, fmt.Errorf("%w: %q", ErrInvalidSeatID, id)
	}
	if row < 1 || col < 1 {
		return WireRef{}, fmt.Errorf("%w: %q", ErrInvalidSeatID, id)
	}
	return WireRef{
		SectionID: strings.Join(parts[:len(parts)-2], "-"),
		Row:       row,
		Col:       col,
	}, nil
}

// StatusEntry はAPIが返す一座席分の状態を表す
type StatusEntry struct {
	SeatID string
	Status Status
}
