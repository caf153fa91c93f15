// Package layoutsrc は外部で管理されるレイアウト定義の取得と
// 検証を行う。定義はコメント付きJSONの宣言的な文書で、
// 検証を通った場合のみ会場として登録できる。
package layoutsrc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/jsonc"

	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
	"github.com/tickget/go-seatmap-engine/internal/domain/venue"
)

const (
	defaultTimeout = 10 * time.Second
	defaultMaxSize = 1 << 20
)

// LoadError はレイアウト取得・解釈の失敗を表す。
// 呼び出し側が代替リンクを出せるよう、取得元URLを保持する。
type LoadError struct {
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("レイアウト定義を読み込めません (%s): %v", e.URL, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader はレイアウト定義を取得して会場へ変換する
type Loader struct {
	http    *http.Client
	maxSize int
}

// Option はローダー構築時の調整
type Option func(*Loader)

// WithHTTPClient は下位のHTTPクライアントを差し替える
func WithHTTPClient(hc *http.Client) Option {
	return func(l *Loader) { l.http = hc }
}

// WithMaxSize は取得する文書のサイズ上限を設定する
func WithMaxSize(n int) Option {
	return func(l *Loader) { l.maxSize = n }
}

// NewLoader はローダーを作る
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		http:    &http.Client{Timeout: defaultTimeout},
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// layoutDoc はレイアウト定義文書の構造
type layoutDoc struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Compact  bool   `json:"compact"`
	Tag      string `json:"tag"`
	Sections []struct {
		ID       string   `json:"id"`
		Grade    string   `json:"grade"`
		Rows     int      `json:"rows"`
		Cols     int      `json:"cols"`
		Fill     string   `json:"fill"`
		Polygon  string   `json:"polygon"`
		Mirrored bool     `json:"mirrored"`
		Floor    int      `json:"floor"`
		Template []string `json:"template"`
	} `json:"sections"`
}

// Load はURLからレイアウト定義を取得して会場を構築する。
// 失敗はすべて *LoadError で返り、呼び出し側を壊さない。
func (l *Loader) Load(ctx context.Context, rawURL string) (*venue.Venue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &LoadError{URL: rawURL, Err: err}
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, &LoadError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &LoadError{URL: rawURL, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(l.maxSize)+1))
	if err != nil {
		return nil, &LoadError{URL: rawURL, Err: err}
	}
	if len(body) > l.maxSize {
		return nil, &LoadError{URL: rawURL, Err: fmt.Errorf("文書が大きすぎます (>%d bytes)", l.maxSize)}
	}

	v, err := Parse(body)
	if err != nil {
		return nil, &LoadError{URL: rawURL, Err: err}
	}
	return v, nil
}

// Parse はレイアウト定義の本文を解釈して会場を構築する
func Parse(src []byte) (*venue.Venue, error) {
	cleaned := stripDirectives(src)

	var doc layoutDoc
	if err := json.Unmarshal(jsonc.ToJSON(cleaned), &doc); err != nil {
		return nil, fmt.Errorf("文書の解析に失敗: %w", err)
	}
	return buildVenue(&doc)
}

// stripDirectives は文書先頭の import / export 行を取り除く。
// 旧形式のレイアウト定義はモジュール指令付きで配布されていた。
func stripDirectives(src []byte) []byte {
	lines := strings.Split(string(src), "\n")
	start := 0
	for start < len(lines) {
		trimmed := strings.TrimSpace(lines[start])
		if trimmed == "" ||
			strings.HasPrefix(trimmed, "import ") ||
			strings.HasPrefix(trimmed, "export default") ||
			strings.HasPrefix(trimmed, "export ") {
			// "export default {" の行は開き括弧だけ残す
			if idx := strings.Index(trimmed, "{"); idx >= 0 {
				lines[start] = trimmed[idx:]
				break
			}
			start++
			continue
		}
		break
	}
	return []byte(strings.Join(lines[start:], "\n"))
}

func buildVenue(doc *layoutDoc) (*venue.Venue, error) {
	if doc.ID == "" {
		return nil, fmt.Errorf("会場IDがありません")
	}
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("区域が1つもありません")
	}

	v := &venue.Venue{
		ID:      doc.ID,
		Name:    doc.Name,
		Kind:    venue.KindGenerated,
		Compact: doc.Compact,
		Tag:     doc.Tag,
	}

	var maxX, maxY float64
	for i, s := range doc.Sections {
		if s.ID == "" {
			return nil, fmt.Errorf("区域%dにIDがありません", i+1)
		}
		grade, err := seat.ParseGrade(s.Grade)
		if err != nil {
			return nil, fmt.Errorf("区域%s: %w", s.ID, err)
		}
		if s.Fill == "" {
			return nil, fmt.Errorf("区域%s: 塗り色がありません", s.ID)
		}

		poly, err := parsePolygon(s.Polygon)
		if err != nil {
			return nil, fmt.Errorf("区域%s: %w", s.ID, err)
		}
		for _, pt := range poly {
			if pt.X > maxX {
				maxX = pt.X
			}
			if pt.Y > maxY {
				maxY = pt.Y
			}
		}

		var tmpl *venue.GridTemplate
		if len(s.Template) > 0 {
			tmpl, err = venue.ParseRows(s.Template)
			if err != nil {
				return nil, fmt.Errorf("区域%s: %w", s.ID, err)
			}
		} else {
			if s.Rows <= 0 || s.Cols <= 0 {
				return nil, fmt.Errorf("区域%s: 行数・カラム数が不正です (%dx%d)", s.ID, s.Rows, s.Cols)
			}
			tmpl = venue.Uniform(s.Rows, s.Cols)
		}

		v.Sections = append(v.Sections, venue.Section{
			ID:       s.ID,
			Grade:    grade,
			Fill:     s.Fill,
			Floor:    s.Floor,
			Polygon:  poly,
			Template: tmpl,
			Mirrored: s.Mirrored,
		})
	}
	v.ViewBoxWidth = maxX
	v.ViewBoxHeight = maxY

	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// parsePolygon は "x1,y1 x2,y2 ..." 形式の頂点列を解析する
func parsePolygon(s string) (venue.Polygon, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return nil, fmt.Errorf("輪郭ポリゴンには3頂点以上が必要です")
	}
	var poly venue.Polygon
	for _, pair := range fields {
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
