package ticketing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickget/go-seatmap-engine/internal/domain/booking"
	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
)

func TestSectionStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/ticketing/matches/m1/sections/45/seats", r.URL.Path)
		assert.Equal(t, "u1", r.URL.Query().Get("userId"))

		json.NewEncoder(w).Encode(map[string]any{
			"seats": []map[string]string{
				{"seatId": "45-1-1", "status": "TAKEN"},
				{"seatId": "45-1-2", "status": "MY_RESERVED"},
				{"seatId": "45-1-3", "status": "AVAILABLE"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	entries, err := c.SectionStatus(context.Background(), "m1", "45", "u1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, seat.StatusTaken, entries[0].Status)
	assert.Equal(t, seat.StatusMyReserved, entries[1].Status)
	assert.Equal(t, "45-1-3", entries[2].SeatID)
}

func TestSectionStatus_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.SectionStatus(context.Background(), "m1", "45", "u1")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestHold_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ticketing/matches/m1/hold", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "u1", body["userId"])
		assert.EqualValues(t, 2, body["totalSeats"])
		seats := body["seats"].([]any)
		require.Len(t, seats, 2)
		first := seats[0].(map[string]any)
		assert.Equal(t, "45", first["sectionId"])
		assert.EqualValues(t, 1, first["row"])
		assert.Equal(t, "R", first["grade"])

		json.NewEncoder(w).Encode(map[string]any{
			"success":   true,
			"heldSeats": []string{"45-1-1", "45-1-2"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Hold(context.Background(), booking.HoldRequest{
		MatchID: "m1",
		UserID:  "u1",
		Seats: []seat.WireRef{
			{SectionID: "45", Row: 1, Col: 1, Grade: seat.GradeR},
			{SectionID: "45", Row: 1, Col: 2, Grade: seat.GradeR},
		},
		TotalSeats: 2,
	})
	require.NoError(t, err)
	assert.False(t, res.Rejected())
	assert.Equal(t, []string{"45-1-1", "45-1-2"}, res.HeldSeats)
}

func TestHold_ConflictIsRejectionNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"success":     false,
			"message":     "SEAT_TAKEN",
			"failedSeats": []string{"45-1-1"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Hold(context.Background(), booking.HoldRequest{MatchID: "m1", UserID: "u1"})
	require.NoError(t, err)
	assert.True(t, res.Rejected())
	assert.Equal(t, "SEAT_TAKEN", res.Message)
	assert.Equal(t, []string{"45-1-1"}, res.FailedSeats)
}

func TestHold_ConflictWithEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Hold(context.Background(), booking.HoldRequest{MatchID: "m1", UserID: "u1"})
	require.NoError(t, err)
	assert.True(t, res.Rejected())
	assert.Equal(t, "SEAT_TAKEN", res.Message)
}

func TestHold_FailedSeatsMeansRejection(t *testing.T) {
	// 200でも failedSeats があれば拒否として扱う
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"failedSeats": []string{"45-1-2"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Hold(context.Background(), booking.HoldRequest{MatchID: "m1", UserID: "u1"})
	require.NoError(t, err)
	assert.True(t, res.Rejected())
}

func TestConfirm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ticketing/matches/m1/confirm", r.URL.Path)
		assert.Equal(t, "u1", r.URL.Query().Get("userId"))
		json.NewEncoder(w).Encode(map[string]any{
			"matchId": "m1", "userRank": 7, "totalRank": 512,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Confirm(context.Background(), "m1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "m1", res.MatchID)
	assert.Equal(t, 7, res.UserRank)
	assert.Equal(t, 512, res.TotalRank)
}

func TestCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/ticketing/matches/m1/seats/cancel", r.URL.Path)
		assert.Equal(t, "u1", r.URL.Query().Get("userId"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	assert.NoError(t, c.Cancel(context.Background(), "m1", "u1"))
}

func TestBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"seats": []any{}})
	}))
	defer srv.Close()

	c := New(srv.URL, WithBearerToken("tok123"))
	_, err := c.SectionStatus(context.Background(), "m1", "45", "u1")
	require.NoError(t, err)
}
