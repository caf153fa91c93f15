package venue

import "fmt"

// Kind は会場の種別を表す
type Kind string

const (
	// KindLarge はアリーナ級。区域数が多く、俯瞰図から区域単位で入る
	KindLarge Kind = "large"
	// KindMedium はホール級。空行の詰め表示を行う
	KindMedium Kind = "medium"
	// KindSmall は劇場級。全区域を一画面に実体化する
	KindSmall Kind = "small"
	// KindGenerated は外部レイアウト定義から構築された会場
	KindGenerated Kind = "generated"
)

// Venue は会場カタログの1エントリを表す
type Venue struct {
	ID   string
	Name string
	Kind Kind

	// Tag はコンパクト会場の座席識別子の接頭辞
	Tag string

	// Compact なら全区域を一括実体化し、識別子にフロアを含める
	Compact bool

	// SuppressEmptyRows なら着席可能セルのない行を列番号から詰める
	SuppressEmptyRows bool

	// ViewBox は俯瞰図の論理サイズ
	ViewBoxWidth  float64
	ViewBoxHeight float64

	Sections []Section

	// Decorations は座席を持たない描画専用の形状（ステージ等）
	Decorations []Decoration
}

// Decoration は俯瞰図にのみ現れる装飾形状を表す
type Decoration struct {
	Label   string
	Fill    string
	Polygon Polygon
}

// Validate は会場定義全体の検証を行う。
// 1つでも着席可能座席がゼロの区域があれば失敗する。
func (v *Venue) Validate() error {
	if len(v.Sections) == 0 {
		return fmt.Errorf("%w: 会場%s", ErrNoSections, v.ID)
	}
	seen := make(map[string]struct{}, len(v.Sections))
	for i := range v.Sections {
		sec := &v.Sections[i]
		if _, dup := seen[sec.ID]; dup {
			return fmt.Errorf("%w: 会場%s 区域%s", ErrDuplicateSection, v.ID, sec.ID)
		}
		seen[sec.ID] = struct{}{}
		if err := sec.Validate(); err != nil {
			return fmt.Errorf("会場%s: %w", v.ID, err)
		}
		grid, err := Materialize(v, sec)
		if err != nil {
			return fmt.Errorf("会場%s: %w", v.ID, err)
		}
		if grid.OccupiableCount() == 0 {
			return fmt.Errorf("%w: 会場%s 区域%s", ErrNoOccupiableSeats, v.ID, sec.ID)
		}
	}
	return nil
}

// Section はIDで区域を引く
func (v *Venue) Section(id string) (*Section, error) {
	for i := range v.Sections {
		if v.Sections[i].ID == id {
			return &v.Sections[i], nil
		}
	}
	return nil, fmt.Errorf("%w: 会場%s 区域%s", ErrSectionNotFound, v.ID, id)
}

// TotalSeats は全区域の着席可能座席数の合計を返す
func (v *Venue) TotalSeats() int {
	total := 0
	for i := range v.Sections {
		grid, err := Materialize(v, &v.Sections[i])
		if err != nil {
			continue
		}
		total += grid.OccupiableCount()
	}
	return total
}
