// Package overview は会場全体の俯瞰図をSVGとして描画する。
// 区域単位のクリックで詳細ビューへ遷移させるため、
// 各ポリゴンには区域IDを属性として埋め込む。
package overview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tickget/go-seatmap-engine/internal/domain/venue"
)

// Padding は外接矩形に足す余白(座標単位)
const Padding = 8.0

// NeutralFill は読み取り専用表示で無関係な区域に使う中間色
const NeutralFill = "#d4d4d8"

// Options は描画モードの調整
type Options struct {
	// ReadOnly が真のとき、RelevantSections に含まれない区域は
	// 中間色になりクリック不可として描画される
	ReadOnly bool

	// RelevantSections は読み取り専用表示で等級色を保つ区域ID
	RelevantSections map[string]bool
}

// Render は会場の全区域と装飾を1枚のSVGにまとめる。
// viewBox は全ポリゴンの外接矩形の合併に余白を足して自動算出する。
func Render(v *venue.Venue, opts Options) string {
	minX, minY, maxX, maxY := unionBounds(v)
	minX -= Padding
	minY -= Padding
	width := maxX - minX + Padding
	height := maxY - minY + Padding

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" role="img" aria-label=%q>`,
		coord(minX), coord(minY), coord(width), coord(height), v.Name)
	b.WriteString("\n")

	for i := range v.Decorations {
		writeDecoration(&b, &v.Decorations[i])
	}
	for i := range v.Sections {
		writeSection(&b, &v.Sections[i], opts)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func writeSection(b *strings.Builder, sec *venue.Section, opts Options) {
	fill := sec.Fill
	clickable := true
	if opts.ReadOnly && !opts.RelevantSections[sec.ID] {
		fill = NeutralFill
		clickable = false
	}

	fmt.Fprintf(b, `  <polygon data-section-id=%q fill=%q points=%q`,
		sec.ID, fill, pointsAttr(sec.Polygon))
	if clickable {
		b.WriteString(` data-clickable="true" cursor="pointer"`)
	} else {
		b.WriteString(` pointer-events="none"`)
	}
	b.WriteString(" />\n")
}

func writeDecoration(b *strings.Builder, d *venue.Decoration) {
	fmt.Fprintf(b, `  <polygon fill=%q points=%q pointer-events="none" />`,
		d.Fill, pointsAttr(d.Polygon))
	b.WriteString("\n")

	if d.Label == "" {
		return
	}
	minX, minY, maxX, maxY, ok := d.Polygon.BoundingBox()
	if !ok {
		return
	}
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	fmt.Fprintf(b,
		`  <text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" pointer-events="none">%s</text>`,
		coord(cx), coord(cy), escapeText(d.Label))
	b.WriteString("\n")
}

// unionBounds は全区域・装飾ポリゴンの外接矩形の合併を求める
func unionBounds(v *venue.Venue) (minX, minY, maxX, maxY float64) {
	first := true
	merge := func(p venue.Polygon) {
		x0, y0, x1, y1, ok := p.BoundingBox()
		if !ok {
			return
		}
		if first {
			minX, minY, maxX, maxY = x0, y0, x1, y1
			first = false
			return
		}
		if x0 < minX {
			minX = x0
		}
		if y0 < minY {
			minY = y0
		}
		if x1 > maxX {
			maxX = x1
		}
		if y1 > maxY {
			maxY = y1
		}
	}
	for i := range v.Sections {
		merge(v.Sections[i].Polygon)
	}
	for i := range v.Decorations {
		merge(v.Decorations[i].Polygon)
	}
	return minX, minY, maxX, maxY
}

func pointsAttr(p venue.Polygon) string {
	parts := make([]string, len(p))
	for i, pt := range p {
		parts[i] = coord(pt.X) + "," + coord(pt.Y)
	}
	return strings.Join(parts, " ")
}

func coord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
