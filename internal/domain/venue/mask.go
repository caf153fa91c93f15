package venue

// TrimSide はトリムを適用する側を表す
type TrimSide int

const (
	// TrimLeading は各行の先頭側をトリムする
	TrimLeading TrimSide = iota
	// TrimTrailing は各行の末尾側をトリムする
	TrimTrailing
)

// ColSpan は1始まりのカラム区間（両端含む）を表す。
// 単一カラムは From == To で表す。
type ColSpan struct {
	From int
	To   int
}

// Col は単一カラム分の区間を返す
func Col(n int) ColSpan {
	return ColSpan{From: n, To: n}
}

// Span はカラム区間を返す
func Span(from, to int) ColSpan {
	return ColSpan{From: from, To: to}
}

// Contains は指定カラムが区間内かを返す
func (s ColSpan) Contains(col int) bool {
	return col >= s.From && col <= s.To
}

// Mask は矩形テンプレートから座席を削るための宣言的な定義。
// 劇場のように行ごとに席数が異なる区域を、原型グリッドを
// 複製せずに表現する。
type Mask struct {
	// SkipRows は行全体を隠す（1始まり行番号）
	SkipRows []int

	// TrimByRow は行番号ごとに TrimSide 側から隠すカラム数
	TrimByRow map[int]int
	TrimSide  TrimSide

	// HiddenByRow は行番号ごとに追加で隠すカラム区間
	HiddenByRow map[int][]ColSpan
}

// Hides は1始まり座標のセルがマスクで隠されるかを返す。
// cols には区域のカラム総数を渡す。
func (m *Mask) Hides(row, col, cols int) bool {
	if m == nil {
		return false
	}
	for _, r := range m.SkipRows {
		if r == row {
			return true
		}
	}
	if trim := m.TrimByRow[row]; trim > 0 {
		if m.TrimSide == TrimLeading && col <= trim {
			return true
		}
		if m.TrimSide == TrimTrailing && col > cols-trim {
			return true
		}
	}
	for _, span := range m.HiddenByRow[row] {
		if span.Contains(col) {
			return true
		}
	}
	return false
}
