package venue

import (
	"fmt"

	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
)

// Grid は実体化済みの区域グリッドを表す。
// テンプレートとマスクを解決した結果で、以後の同期・選択は
// すべてこのグリッド上の座席を参照する。
type Grid struct {
	SectionID string
	Rows      int
	Cols      int

	seats    []seat.Seat
	seatIdx  [][]int // テンプレート座標 → seats のインデックス（-1は通路）
	byID     map[string]int
	byWireID map[string]int

	// rowNums はテンプレート行ごとの表示行番号。空行詰めのとき
	// 着席可能セルのない行は0になる。
	rowNums []int
}

// Materialize は区域のテンプレートとマスクを解決して座席を生成する。
// 左右反転は番号付けの前に適用され、席番号は各行で1から
// 着席可能セルのみを数えて付く。
func Materialize(v *Venue, sec *Section) (*Grid, error) {
	if sec.Template == nil {
		return nil, fmt.Errorf("%w: 区域%s", ErrMissingTemplate, sec.ID)
	}
	tmpl := sec.Template
	if sec.Mirrored {
		tmpl = tmpl.Mirrored()
	}
	rows, cols := tmpl.Rows(), tmpl.Cols()

	occ := make([][]bool, rows)
	for r := 1; r <= rows; r++ {
		occ[r-1] = make([]bool, cols)
		for c := 1; c <= cols; c++ {
			occ[r-1][c-1] = tmpl.At(r, c) && !sec.Mask.Hides(r, c, cols)
		}
	}

	// 表示行番号を決める。空行詰めが有効なら、着席可能セルの
	// ない行を飛ばして番号を詰める。
	rowNums := make([]int, rows)
	visible := 0
	for r := 0; r < rows; r++ {
		hasSeat := false
		for c := 0; c < cols; c++ {
			if occ[r][c] {
				hasSeat = true
				break
			}
		}
		if hasSeat {
			visible++
			rowNums[r] = visible
		} else if !v.SuppressEmptyRows {
			visible++
		}
	}

	g := &Grid{
		SectionID: sec.ID,
		Rows:      rows,
		Cols:      cols,
		seatIdx:   make([][]int, rows),
		byID:      make(map[string]int),
		byWireID:  make(map[string]int),
		rowNums:   rowNums,
	}

	for r := 1; r <= rows; r++ {
		g.seatIdx[r-1] = make([]int, cols)
		seatInRow := 0
		for c := 1; c <= cols; c++ {
			g.seatIdx[r-1][c-1] = -1
			if !occ[r-1][c-1] {
				continue
			}
			seatInRow++
			s := seat.Seat{
				SectionID: sec.ID,
				Row:       rowNums[r-1],
				Col:       c,
				SeatInRow: seatInRow,
				Grade:     sec.GradeAt(r, c),
				Compact:   v.Compact,
				VenueTag:  v.Tag,
				Floor:     sec.Floor,
			}
			g.seats = append(g.seats, s)
			idx := len(g.seats) - 1
			g.seatIdx[r-1][c-1] = idx
			g.byID[s.ID()] = idx
			g.byWireID[s.WireID()] = idx
		}
	}

	return g, nil
}

// OccupiableCount は着席可能座席の総数を返す
func (g *Grid) OccupiableCount() int {
	return len(g.seats)
}

// Seats は全座席を行優先の順で返す
func (g *Grid) Seats() []seat.Seat {
	return g.seats
}

// At はテンプレート座標（1始まり）の座席を返す。通路なら nil。
func (g *Grid) At(row, col int) *seat.Seat {
	if row < 1 || row > g.Rows || col < 1 || col > g.Cols {
		return nil
	}
	idx := g.seatIdx[row-1][col-1]
	if idx < 0 {
		return nil
	}
	return &g.seats[idx]
}

// SeatByID は内部識別子で座席を引く
func (g *Grid) SeatByID(id string) (*seat.Seat, bool) {
	idx, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return &g.seats[idx], true
}

// SeatByWireID は通信用識別子で座席を引く
func (g *Grid) SeatByWireID(id string) (*seat.Seat, bool) {
	idx, ok := g.byWireID[id]
	if !ok {
		return nil, false
	}
	return &g.seats[idx], true
}

// RowNum はテンプレート行の表示行番号を返す。
// 空行詰めで隠れた行は0になる。
func (g *Grid) RowNum(row int) int {
	if row < 1 || row > g.Rows {
		return 0
	}
	return g.rowNums[row-1]
}
