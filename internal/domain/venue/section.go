package venue

import (
	"fmt"

	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
)

// Point は俯瞰図上の座標を表す
type Point struct {
	X float64
	Y float64
}

// Polygon は区域の輪郭を表す頂点列
type Polygon []Point

// BoundingBox はポリゴンの外接矩形を返す。
// 空のポリゴンは ok=false を返す。
func (p Polygon) BoundingBox() (minX, minY, maxX, maxY float64, ok bool) {
	if len(p) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = p[0].X, p[0].Y
	maxX, maxY = p[0].X, p[0].Y
	for _, pt := range p[1:] {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}
	return minX, minY, maxX, maxY, true
}

// GradeZone は区域内の矩形範囲と等級の対応を表す。
// 劇場のように1区域に複数等級が混在する場合に使う。
// From/To が0の軸は無制限として扱う。
type GradeZone struct {
	RowFrom int
	RowTo   int
	ColFrom int
	ColTo   int
	Grade   seat.Grade
}

func (z GradeZone) contains(row, col int) bool {
	if z.RowFrom > 0 && row < z.RowFrom {
		return false
	}
	if z.RowTo > 0 && row > z.RowTo {
		return false
	}
	if z.ColFrom > 0 && col < z.ColFrom {
		return false
	}
	if z.ColTo > 0 && col > z.ColTo {
		return false
	}
	return true
}

// Section はカタログ上の1区域を表す。
// Template は複数区域で共有でき、Mirrored が真なら
// 実体化時に左右反転して使う。
type Section struct {
	ID       string
	Grade    seat.Grade
	Zones    []GradeZone
	Floor    int
	Fill     string
	Polygon  Polygon
	Template *GridTemplate
	Mirrored bool
	Mask     *Mask
}

// GradeAt は1始まり座標の座席等級を返す。
// 先頭から最初に一致したゾーンが優先され、どれにも
// 一致しなければ区域の既定等級になる。
func (s *Section) GradeAt(row, col int) seat.Grade {
	for _, z := range s.Zones {
		if z.contains(row, col) {
			return z.Grade
		}
	}
	return s.Grade
}

// Validate は区域定義の検証を行う
func (s *Section) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("区域IDが空です")
	}
	if !s.Grade.Valid() {
		return fmt.Errorf("%w: 区域%s 等級%q", ErrInvalidGrade, s.ID, s.Grade)
	}
	for _, z := range s.Zones {
		if !z.Grade.Valid() {
			return fmt.Errorf("%w: 区域%s ゾーン等級%q", ErrInvalidGrade, s.ID, z.Grade)
		}
	}
	if s.Template == nil {
		return fmt.Errorf("%w: 区域%s", ErrMissingTemplate, s.ID)
	}
	if len(s.Polygon) == 0 {
		return fmt.Errorf("%w: 区域%s", ErrEmptyPolygon, s.ID)
	}
	return nil
}
