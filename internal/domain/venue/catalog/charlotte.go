package catalog

import (
	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
	"github.com/tickget/go-seatmap-engine/internal/domain/venue"
)

// 1階の側方ブロックは後方へ向かって扇状に広がる。
// 行ごとの内側トリム量でその形を表現する。
var charlotteSideTrim = map[int]int{
	1: 14, 2: 10, 3: 9, 4: 8, 5: 7, 6: 6, 7: 6,
	8: 5, 9: 4, 10: 4, 11: 3, 12: 2, 13: 2, 14: 1,
}

// 1階中央ブロックの通路・欠け
var charlotteCenterHidden = map[int][]venue.ColSpan{
	3:  {venue.Col(16)},
	5:  {venue.Col(16)},
	7:  {venue.Col(16)},
	9:  {venue.Col(16)},
	11: {venue.Col(16)},
	13: {venue.Col(16)},
	15: {venue.Col(16)},
	17: {venue.Col(16)},
	19: {venue.Col(16)},
	21: {venue.Span(1, 4), venue.Col(7), venue.Col(10), venue.Span(13, 16)},
}

// buildCharlotteTheater は劇場級会場を構築する。
// 全区域を一括で実体化するコンパクト会場で、座席識別子に
// フロア番号を含む。
func buildCharlotteTheater() (*venue.Venue, error) {
	// 1階側方ブロックの等級区画。前方17列は縦割りでVIPとRが並ぶ。
	leftZones := []venue.GradeZone{
		{RowTo: 18, ColFrom: 9, ColTo: 14, Grade: seat.GradeVIP},
		{RowTo: 18, ColTo: 8, Grade: seat.GradeR},
	}
	rightZones := []venue.GradeZone{
		{RowTo: 18, ColTo: 6, Grade: seat.GradeVIP},
		{RowTo: 18, ColFrom: 7, Grade: seat.GradeR},
	}
	// 2階は前方2行のみ縦割りで、以降は行単位で等級が変わる
	upperLeftZones := []venue.GradeZone{
		{RowTo: 2, ColFrom: 9, ColTo: 14, Grade: seat.GradeVIP},
		{RowTo: 2, ColTo: 8, Grade: seat.GradeR},
		{RowFrom: 3, RowTo: 4, Grade: seat.GradeR},
		{RowFrom: 5, RowTo: 7, Grade: seat.GradeS},
	}
	upperRightZones := []venue.GradeZone{
		{RowTo: 2, ColTo: 6, Grade: seat.GradeVIP},
		{RowTo: 2, ColFrom: 7, Grade: seat.GradeR},
		{RowFrom: 3, RowTo: 4, Grade: seat.GradeR},
		{RowFrom: 5, RowTo: 7, Grade: seat.GradeS},
	}
	upperCenterZones := []venue.GradeZone{
		{RowTo: 2, Grade: seat.GradeVIP},
		{RowFrom: 3, RowTo: 4, Grade: seat.GradeR},
		{RowFrom: 5, RowTo: 7, Grade: seat.GradeS},
	}

	v := &venue.Venue{
		ID:            "charlotte-theater",
		Name:          "샬롯데씨어터",
		Kind:          venue.KindSmall,
		Tag:           "small",
		Compact:       true,
		ViewBoxWidth:  480,
		ViewBoxHeight: 360,
		Sections: []venue.Section{
			{
				ID:       "1",
				Grade:    seat.GradeR,
				Zones:    leftZones,
				Floor:    1,
				Fill:     "#4CA0FF",
				Polygon:  rect(10, 40, 150, 260),
				Template: venue.Uniform(21, 14),
				Mask: &venue.Mask{
					SkipRows:  []int{21},
					TrimSide:  venue.TrimLeading,
					TrimByRow: charlotteSideTrim,
				},
			},
			{
				ID:    "2",
				Grade: seat.GradeVIP,
				Zones: []venue.GradeZone{
					{RowFrom: 19, Grade: seat.GradeR},
				},
				Floor:    1,
				Fill:     "#7C50E4",
				Polygon:  rect(165, 40, 325, 260),
				Template: venue.Uniform(21, 16),
				Mask: &venue.Mask{
					HiddenByRow: charlotteCenterHidden,
				},
			},
			{
				ID:       "3",
				Grade:    seat.GradeR,
				Zones:    rightZones,
				Floor:    1,
				Fill:     "#4CA0FF",
				Polygon:  rect(340, 40, 470, 260),
				Template: venue.Uniform(21, 14),
				Mask: &venue.Mask{
					SkipRows:  []int{21},
					TrimSide:  venue.TrimTrailing,
					TrimByRow: charlotteSideTrim,
				},
			},
			{
				ID:       "4",
				Grade:    seat.GradeA,
				Zones:    upperLeftZones,
				Floor:    2,
				Fill:     "#9CCC65",
				Polygon:  rect(10, 280, 150, 350),
				Template: venue.Uniform(12, 14),
				Mask: &venue.Mask{
					HiddenByRow: map[int][]venue.ColSpan{
						1: {venue.Col(1)},
						2: {venue.Col(1)},
					},
				},
			},
			{
				ID:       "5",
				Grade:    seat.GradeA,
				Zones:    upperCenterZones,
				Floor:    2,
				Fill:     "#9CCC65",
				Polygon:  rect(165, 280, 325, 350),
				Template: venue.Uniform(12, 16),
				Mask: &venue.Mask{
					HiddenByRow: map[int][]venue.ColSpan{
						2: {venue.Col(16)},
						4: {venue.Col(16)},
						6: {venue.Col(16)},
					},
				},
			},
			{
				ID:       "6",
				Grade:    seat.GradeA,
				Zones:    upperRightZones,
				Floor:    2,
				Fill:     "#9CCC65",
				Polygon:  rect(340, 280, 470, 350),
				Template: venue.Uniform(12, 14),
				Mask: &venue.Mask{
					HiddenByRow: map[int][]venue.ColSpan{
						1: {venue.Col(14)},
						2: {venue.Col(14)},
					},
				},
			},
		},
	}
	return v, nil
}

// rect は矩形の4頂点ポリゴンを返す
func rect(x1, y1, x2, y2 float64) venue.Polygon {
	return venue.Polygon{
		{X: x1, Y: y1}, {X: x2, Y: y1},
		{X: x2, Y: y2}, {X: x1, Y: y2},
	}
}
