package layoutsrc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
	"github.com/tickget/go-seatmap-engine/internal/domain/venue"
)

const sampleLayout = `
// 小規模ホールのレイアウト定義
{
  "id": "riverside-hall",
  "name": "リバーサイドホール",
  "sections": [
    {
      "id": "A",
      "grade": "VIP",
      "rows": 3,
      "cols": 4,
      "fill": "#7C50E4",
      "polygon": "10,10 110,10 110,80 10,80",
    },
    {
      "id": "B",
      "grade": "R",
      "fill": "#4CA0FF",
      "polygon": "120,10 220,10 220,80 120,80",
      "template": ["111", "101"],
      "mirrored": true,
    },
  ],
}
`

func TestParse_レイアウト定義から会場を構築できる(t *testing.T) {
	v, err := Parse([]byte(sampleLayout))
	require.NoError(t, err)

	assert.Equal(t, "riverside-hall", v.ID)
	assert.Equal(t, "リバーサイドホール", v.Name)
	assert.Equal(t, venue.KindGenerated, v.Kind)
	require.Len(t, v.Sections, 2)

	a, err := v.Section("A")
	require.NoError(t, err)
	assert.Equal(t, seat.GradeVIP, a.Grade)
	assert.Equal(t, 12, a.Template.OccupiableCount())

	b, err := v.Section("B")
	require.NoError(t, err)
	assert.True(t, b.Mirrored)
	assert.Equal(t, 5, b.Template.OccupiableCount())

	assert.Equal(t, 220.0, v.ViewBoxWidth)
	assert.Equal(t, 80.0, v.ViewBoxHeight)
}

func TestParse_モジュール指令付きの旧形式を受け付ける(t *testing.T) {
	src := `import { defineLayout } from "layout-kit";

export default {
  "id": "legacy",
  "name": "旧形式",
  "sections": [
    {"id": "1", "grade": "S", "rows": 2, "cols": 2, "fill": "#FFCC10", "polygon": "0,0 50,0 50,40 0,40"}
  ]
}`
	v, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "legacy", v.ID)
	assert.Equal(t, 4, v.TotalSeats())
}

func TestParse_不正な文書(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"会場IDなし", `{"name": "x", "sections": [{"id": "1", "grade": "S", "rows": 2, "cols": 2, "fill": "#fff", "polygon": "0,0 1,0 1,1"}]}`},
		{"区域なし", `{"id": "x", "sections": []}`},
		{"未知の等級", `{"id": "x", "sections": [{"id": "1", "grade": "PLATINUM", "rows": 2, "cols": 2, "fill": "#fff", "polygon": "0,0 1,0 1,1"}]}`},
		{"塗り色なし", `{"id": "x", "sections": [{"id": "1", "grade": "S", "rows": 2, "cols": 2, "polygon": "0,0 1,0 1,1"}]}`},
		{"頂点不足", `{"id": "x", "sections": [{"id": "1", "grade": "S", "rows": 2, "cols": 2, "fill": "#fff", "polygon": "0,0 1,0"}]}`},
		{"行数ゼロ", `{"id": "x", "sections": [{"id": "1", "grade": "S", "rows": 0, "cols": 2, "fill": "#fff", "polygon": "0,0 1,0 1,1"}]}`},
		{"JSONとして壊れている", `{"id": "x", "sections": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestLoad_HTTP経由で取得できる(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(sampleLayout))
	}))
	defer srv.Close()

	loader := NewLoader(WithHTTPClient(srv.Client()))
	v, err := loader.Load(context.Background(), srv.URL+"/layouts/riverside.jsonc")
	require.NoError(t, err)
	assert.Equal(t, "riverside-hall", v.ID)
}

func TestLoad_失敗時は取得元URLを保持する(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	loader := NewLoader(WithHTTPClient(srv.Client()))
	_, err := loader.Load(context.Background(), srv.URL+"/missing.jsonc")
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, srv.URL+"/missing.jsonc", loadErr.URL)
}

func TestLoad_サイズ上限を超えた文書を拒否する(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat(" ", 2048) + sampleLayout))
	}))
	defer srv.Close()

	loader := NewLoader(WithHTTPClient(srv.Client()), WithMaxSize(1024))
	_, err := loader.Load(context.Background(), srv.URL)
	require.Error(t, err)

	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}
