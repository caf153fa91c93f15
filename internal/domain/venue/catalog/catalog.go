// Package catalog は組み込み会場の静的定義を提供する。
// 各会場は宣言的なテンプレートとマスクで記述され、
// 構築時に全区域の検証を行う。
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tickget/go-seatmap-engine/internal/domain/venue"
)

// polyDef は図面から採取したポリゴン1つ分の生データ
type polyDef struct {
	id     string
	level  string
	fill   string
	points string
}

// Catalog は会場IDから会場定義を引く
type Catalog struct {
	venues map[string]*venue.Venue
	order  []string
}

// New は組み込み会場をすべて構築して検証する。
// 1会場でも定義に問題があればエラーを返す。
func New() (*Catalog, error) {
	c := &Catalog{venues: make(map[string]*venue.Venue)}
	builders := []func() (*venue.Venue, error){
		buildInspireArena,
		buildOlympicHall,
		buildCharlotteTheater,
	}
	for _, build := range builders {
		v, err := build()
		if err != nil {
			return nil, err
		}
		if err := v.Validate(); err != nil {
			return nil, err
		}
		c.venues[v.ID] = v
		c.order = append(c.order, v.ID)
	}
	return c, nil
}

// MustNew は構築失敗時にpanicする。起動時専用。
func MustNew() *Catalog {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup は会場IDで会場定義を引く
func (c *Catalog) Lookup(id string) (*venue.Venue, error) {
	v, ok := c.venues[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVenueNotFound, id)
	}
	return v, nil
}

// Register は動的に構築した会場を追加する。
// 外部レイアウト定義から生成した会場の登録に使う。
func (c *Catalog) Register(v *venue.Venue) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if _, dup := c.venues[v.ID]; dup {
		return fmt.Errorf("%w: %s", ErrVenueExists, v.ID)
	}
	c.venues[v.ID] = v
	c.order = append(c.order, v.ID)
	return nil
}

// IDs は登録順の会場ID一覧を返す
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// parsePoints は "x1,y1 x2,y2 ..." 形式の頂点列を解析する
func parsePoints(s string) (venue.Polygon, error) {
	var poly venue.Polygon
	for _, pair := range strings.Fields(s) {
		xy := strings.Split(pair, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("頂点の形式が不正です: %q", pair)
		}
		x, err := strconv.ParseFloat(xy[0], 64)
		if err != nil {
			return nil, fmt.Errorf("頂点の形式が不正です: %q", pair)
		}
		y, err := strconv.ParseFloat(xy[1], 64)
		if err != nil {
			return nil, fmt.Errorf("頂点の形式が不正です: %q", pair)
		}
		poly = append(poly, venue.Point{X: x, Y: y})
	}
	return poly, nil
}

func mustPoints(s string) venue.Polygon {
	p, err := parsePoints(s)
	if err != nil {
		panic(err)
	}
	return p
}
