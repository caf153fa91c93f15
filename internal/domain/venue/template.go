package venue

import "fmt"

// GridTemplate は区域の座席配置を表す矩形グリッド。
// セルが true のとき着席可能、false のとき通路や欠けを表す。
type GridTemplate struct {
	cells [][]bool
}

// NewTemplate は 0/1 の二次元配列からテンプレートを構築する。
// 行の長さが揃っていない場合はエラーを返す。
func NewTemplate(rows [][]int) (*GridTemplate, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyTemplate
	}
	cols := len(rows[0])
	cells := make([][]bool, len(rows))
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: 行%d", ErrRaggedTemplate, r+1)
		}
		cells[r] = make([]bool, cols)
		for c, v := range row {
			switch v {
			case 0:
				// 通路
			case 1:
				cells[r][c] = true
			default:
				return nil, fmt.Errorf("%w: 行%d 列%d 値%d", ErrInvalidCell, r+1, c+1, v)
			}
		}
	}
	return &GridTemplate{cells: cells}, nil
}

// ParseRows は "1101" のような文字列行からテンプレートを構築する。
// カタログ定義を短く書くための補助。
func ParseRows(rows []string) (*GridTemplate, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyTemplate
	}
	ints := make([][]int, len(rows))
	for r, row := range rows {
		ints[r] = make([]int, len(row))
		for c, ch := range row {
			switch ch {
			case '0':
				ints[r][c] = 0
			case '1':
				ints[r][c] = 1
			default:
				return nil, fmt.Errorf("%w: 行%d 列%d 文字%q", ErrInvalidCell, r+1, c+1, ch)
			}
		}
	}
	return NewTemplate(ints)
}

// Uniform は全セルが着席可能な rows×cols のテンプレートを返す
func Uniform(rows, cols int) *GridTemplate {
	cells := make([][]bool, rows)
	for r := range cells {
		cells[r] = make([]bool, cols)
		for c := range cells[r] {
			cells[r][c] = true
		}
	}
	return &GridTemplate{cells: cells}
}

// MustTemplate はカタログ定義用。不正なテンプレートは起動時にpanicする。
func MustTemplate(rows [][]int) *GridTemplate {
	t, err := NewTemplate(rows)
	if err != nil {
		panic(err)
	}
	return t
}

// Rows はグリッドの行数を返す
func (t *GridTemplate) Rows() int {
	return len(t.cells)
}

// Cols はグリッドのカラム数を返す
func (t *GridTemplate) Cols() int {
	if len(t.cells) == 0 {
		return 0
	}
	return len(t.cells[0])
}

// At は1始まり座標のセルが着席可能かを返す。範囲外は false。
func (t *GridTemplate) At(row, col int) bool {
	if row < 1 || row > t.Rows() || col < 1 || col > t.Cols() {
		return false
	}
	return t.cells[row-1][col-1]
}

// OccupiableCount は着席可能セルの総数を返す
func (t *GridTemplate) OccupiableCount() int {
	n := 0
	for _, row := range t.cells {
		for _, c := range row {
			if c {
				n++
			}
		}
	}
	return n
}

// Mirrored は各行を左右反転した新しいテンプレートを返す。
// 会場の対称な区域が1つの原型を共有するために使う。
func (t *GridTemplate) Mirrored() *GridTemplate {
	cells := make([][]bool, len(t.cells))
	for r, row := range t.cells {
		rev := make([]bool, len(row))
		for c, v := range row {
			rev[len(row)-1-c] = v
		}
		cells[r] = rev
	}
	return &GridTemplate{cells: cells}
}
