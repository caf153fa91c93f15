package overview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
	"github.com/tickget/go-seatmap-engine/internal/domain/venue"
)

func testVenue() *venue.Venue {
	return &venue.Venue{
		ID:   "test-hall",
		Name: "テストホール",
		Kind: venue.KindSmall,
		Sections: []venue.Section{
			{
				ID:       "1",
				Grade:    seat.GradeVIP,
				Fill:     "#7C50E4",
				Polygon:  venue.Polygon{{X: 20, Y: 30}, {X: 120, Y: 30}, {X: 120, Y: 90}, {X: 20, Y: 90}},
				Template: venue.Uniform(2, 3),
			},
			{
				ID:       "2",
				Grade:    seat.GradeR,
				Fill:     "#4CA0FF",
				Polygon:  venue.Polygon{{X: 130, Y: 30}, {X: 230, Y: 30}, {X: 230, Y: 90}, {X: 130, Y: 90}},
				Template: venue.Uniform(2, 3),
			},
		},
		Decorations: []venue.Decoration{
			{
				Label:   "무대",
				Fill:    "#e5e5e5",
				Polygon: venue.Polygon{{X: 60, Y: 0}, {X: 190, Y: 0}, {X: 190, Y: 20}, {X: 60, Y: 20}},
			},
		},
	}
}

func TestRender_全区域と装飾を含むSVGを出力する(t *testing.T) {
	svg := Render(testVenue(), Options{})

	assert.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.Contains(t, svg, `data-section-id="1"`)
	assert.Contains(t, svg, `data-section-id="2"`)
	assert.Contains(t, svg, `fill="#7C50E4"`)
	assert.Contains(t, svg, `fill="#4CA0FF"`)
	assert.Contains(t, svg, `points="20,30 120,30 120,90 20,90"`)
	assert.Contains(t, svg, ">무대</text>")
}

func TestRender_viewBoxは外接矩形に余白を足して自動算出される(t *testing.T) {
	svg := Render(testVenue(), Options{})

	// 合併外接矩形は (20,0)-(230,90)。全辺に8の余白。
	assert.Contains(t, svg, `viewBox="12 -8 226 106"`)
}

func TestRender_通常表示では全区域がクリック可能(t *testing.T) {
	svg := Render(testVenue(), Options{})

	assert.Equal(t, 2, strings.Count(svg, `data-clickable="true"`))
}

func TestRender_読み取り専用表示では無関係な区域が中間色になる(t *testing.T) {
	svg := Render(testVenue(), Options{
		ReadOnly:         true,
		RelevantSections: map[string]bool{"1": true},
	})

	// 区域1は等級色とクリック可能属性を保つ
	assert.Contains(t, svg, `fill="#7C50E4"`)
	assert.Equal(t, 1, strings.Count(svg, `data-clickable="true"`))

	// 区域2は中間色でクリック不可
	assert.Contains(t, svg, NeutralFill)
	assert.NotContains(t, svg, `fill="#4CA0FF"`)

	lines := strings.Split(svg, "\n")
	var section2 string
	for _, line := range lines {
		if strings.Contains(line, `data-section-id="2"`) {
			section2 = line
		}
	}
	require.NotEmpty(t, section2)
	assert.Contains(t, section2, `pointer-events="none"`)
}
