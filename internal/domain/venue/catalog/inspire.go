package catalog

import (
	"fmt"

	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
	"github.com/tickget/go-seatmap-engine/internal/domain/venue"
)

// アリーナの区域グリッド原型。対称な区域は反転フラグ付きで
// 同じ原型を共有する。
var inspireTemplates = map[string]*venue.GridTemplate{
	"Inspire_1":  venue.Uniform(20, 50),
	"Inspire_5":  venue.Uniform(14, 33),
	"Inspire_6":  venue.Uniform(13, 11),
	"Inspire_7":  venue.Uniform(14, 22),
	"Inspire_11": venue.Uniform(14, 27),
	"Inspire_12": venue.Uniform(13, 18),
	"Inspire_15": venue.Uniform(14, 27),
	"Inspire_16": venue.Uniform(11, 9),
	"Inspire_23": venue.Uniform(14, 24),
	"Inspire_25": venue.Uniform(10, 38),
	"Inspire_26": venue.Uniform(13, 26),
	"Inspire_27": venue.Uniform(10, 22),
	"Inspire_31": venue.Uniform(7, 41),
	"Inspire_39": venue.Uniform(8, 22),
	"Inspire_42": venue.Uniform(13, 34),
	"Inspire_43": venue.Uniform(10, 25),
	"Inspire_45": venue.Uniform(10, 40),
	"Inspire_46": venue.Uniform(11, 45),
	"Inspire_47": venue.Uniform(11, 19),
	"Inspire_49": venue.Uniform(11, 22),
	"Inspire_50": venue.Uniform(11, 23),
	"Inspire_52": venue.Uniform(11, 45),
	"Inspire_55": venue.Uniform(10, 40),
	"Inspire_56": venue.Uniform(11, 46),
	"Inspire_57": venue.Uniform(11, 9),
}

type patternRef struct {
	template string
	mirrored bool
}

// 区域IDからグリッド原型への対応
var inspireSectionPatterns = map[string]patternRef{
	"1": {"Inspire_1", false}, "2": {"Inspire_1", false},
	"3": {"Inspire_1", false}, "4": {"Inspire_1", false},
	"5": {"Inspire_5", false}, "6": {"Inspire_6", false},
	"7": {"Inspire_7", false}, "8": {"Inspire_7", false}, "9": {"Inspire_7", false},
	"10": {"Inspire_16", true}, "11": {"Inspire_11", false}, "12": {"Inspire_12", false},
	"13": {"Inspire_23", false}, "14": {"Inspire_12", true}, "15": {"Inspire_15", false},
	"16": {"Inspire_16", false},
	"17": {"Inspire_7", false}, "18": {"Inspire_7", false}, "19": {"Inspire_7", false},
	"20": {"Inspire_6", true}, "21": {"Inspire_5", false}, "22": {"Inspire_12", false},
	"23": {"Inspire_23", false}, "24": {"Inspire_12", true},
	"25": {"Inspire_25", false}, "26": {"Inspire_26", false},
	"27": {"Inspire_27", false}, "28": {"Inspire_27", false}, "29": {"Inspire_27", false},
	"30": {"Inspire_26", true}, "31": {"Inspire_31", false}, "32": {"Inspire_42", false},
	"33": {"Inspire_43", false}, "34": {"Inspire_42", true}, "35": {"Inspire_25", true},
	"36": {"Inspire_26", false}, "37": {"Inspire_39", false}, "38": {"Inspire_39", false},
	"39": {"Inspire_39", false}, "40": {"Inspire_26", true}, "41": {"Inspire_25", false},
	"42": {"Inspire_42", false}, "43": {"Inspire_43", false}, "44": {"Inspire_42", true},
	"45": {"Inspire_45", false}, "46": {"Inspire_46", false}, "47": {"Inspire_47", false},
	"48": {"Inspire_52", true}, "49": {"Inspire_49", false}, "50": {"Inspire_50", false},
	"51": {"Inspire_49", true}, "52": {"Inspire_52", false}, "53": {"Inspire_47", true},
	"54": {"Inspire_46", true}, "55": {"Inspire_55", false}, "56": {"Inspire_56", false},
	"57": {"Inspire_57", false},
}

// buildInspireArena はアリーナ級会場を構築する。
// 俯瞰図から区域単位で入る想定のため、区域数が多い。
func buildInspireArena() (*venue.Venue, error) {
	v := &venue.Venue{
		ID:            "inspire-arena",
		Name:          "인스파이어 아레나",
		Kind:          venue.KindLarge,
		ViewBoxWidth:  971,
		ViewBoxHeight: 735,
	}

	for _, p := range inspirePolys {
		poly, err := parsePoints(p.points)
		if err != nil {
			return nil, fmt.Errorf("inspire-arena 区域%s: %w", p.id, err)
		}
		if p.level == "STAGE" || p.level == "CONSOLE" {
			v.Decorations = append(v.Decorations, venue.Decoration{
				Label:   p.level,
				Fill:    p.fill,
				Polygon: poly,
			})
			continue
		}
		grade, err := seat.ParseGrade(p.level)
		if err != nil {
			return nil, fmt.Errorf("inspire-arena 区域%s: %w", p.id, err)
		}
		ref, ok := inspireSectionPatterns[p.id]
		if !ok {
			return nil, fmt.Errorf("inspire-arena 区域%s: グリッド原型が未定義です", p.id)
		}
		v.Sections = append(v.Sections, venue.Section{
			ID:       p.id,
			Grade:    grade,
			Fill:     inspireFill(grade, p.fill),
			Polygon:  poly,
			Template: inspireTemplates[ref.template],
			Mirrored: ref.mirrored,
		})
	}
	return v, nil
}

// inspireFill は等級ごとの表示色へ正規化する。
// VIPとRは図面の塗り色ではなく固定色を使う。
func inspireFill(g seat.Grade, raw string) string {
	switch g {
	case seat.GradeVIP:
		return "#7C50E4"
	case seat.GradeR:
		return "#4CA0FF"
	case seat.GradeStanding:
		if raw != "" {
			return raw
		}
		return "#FE4AB9"
	}
	return raw
}
