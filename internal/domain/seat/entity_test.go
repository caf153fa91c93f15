package seat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeat_ID(t *testing.T) {
	tests := []struct {
		name string
		seat Seat
		want string
	}{
		{
			name: "通常会場は区域-列-席番号形式",
			seat: Seat{SectionID: "45", Row: 3, Col: 7, SeatInRow: 5},
			want: "45-3-5",
		},
		{
			name: "席番号はカラム位置と独立している",
			seat: Seat{SectionID: "F1", Row: 1, Col: 10, SeatInRow: 8},
			want: "F1-1-8",
		},
		{
			name: "コンパクト会場はタグとフロア付き",
			seat: Seat{SectionID: "B", Row: 2, Col: 4, SeatInRow: 4, Compact: true, VenueTag: "small", Floor: 1},
			want: "small-1-B-2-4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.seat.ID())
		})
	}
}

func TestSeat_WireID(t *testing.T) {
	// 通信用識別子は席番号ではなくカラム位置を使う
	s := Seat{SectionID: "45", Row: 3, Col: 7, SeatInRow: 5}
	assert.Equal(t, "45-3-7", s.WireID())

	// コンパクト会場でも通信用は短い形式のまま
	c := Seat{SectionID: "B", Row: 2, Col: 4, Compact: true, VenueTag: "small", Floor: 1}
	assert.Equal(t, "B-2-4", c.WireID())
}

func TestSeat_Label(t *testing.T) {
	s := Seat{SectionID: "45", Row: 3, Col: 7, SeatInRow: 5}
	assert.Equal(t, "45구역-3열-5번", s.Label())
}

func TestParseWireID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		want    WireRef
		wantErr error
	}{
		{
			name: "標準形式",
			id:   "45-3-7",
			want: WireRef{SectionID: "45", Row: 3, Col: 7},
		},
		{
			name: "区域IDにハイフンを含む",
			id:   "1F-A-2-4",
			want: WireRef{SectionID: "1F-A", Row: 2, Col: 4},
		},
		{
			name:    "要素不足",
			id:      "45-3",
			wantErr: ErrInvalidSeatID,
		},
		{
			name:    "座標が数値でない",
			id:      "45-x-7",
			wantErr: ErrInvalidSeatID,
		},
		{
			name:    "座標が0以下",
			id:      "45-0-7",
			wantErr: ErrInvalidSeatID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWireID(tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGrade(t *testing.T) {
	for _, s := range []string{"VIP", "R", "S", "A", "STANDING"} {
		g, err := ParseGrade(s)
		require.NoError(t, err)
		assert.Equal(t, Grade(s), g)
		assert.True(t, g.Valid())
	}

	_, err := ParseGrade("PREMIUM")
	assert.ErrorIs(t, err, ErrUnknownGrade)
}

func TestGrade_Label(t *testing.T) {
	assert.Equal(t, "VIP석", GradeVIP.Label())
	assert.Equal(t, "스탠딩석", GradeStanding.Label())
	assert.Equal(t, "R석", GradeR.Label())
}

func TestStatus_Occupied(t *testing.T) {
	assert.True(t, StatusTaken.Occupied())
	// 自分の予約済みも表示上は選択不可
	assert.True(t, StatusMyReserved.Occupied())
	assert.False(t, StatusAvailable.Occupied())
}
