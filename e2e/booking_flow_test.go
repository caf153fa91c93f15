package e2e

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickget/go-seatmap-engine/internal/application"
	"github.com/tickget/go-seatmap-engine/internal/bots"
	"github.com/tickget/go-seatmap-engine/internal/domain/booking"
	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
	"github.com/tickget/go-seatmap-engine/internal/domain/session"
	"github.com/tickget/go-seatmap-engine/internal/domain/venue"
	"github.com/tickget/go-seatmap-engine/internal/infrastructure/ticketing"
	"github.com/tickget/go-seatmap-engine/internal/server"
	"github.com/tickget/go-seatmap-engine/internal/server/auth"
	"github.com/tickget/go-seatmap-engine/internal/server/store"
)

const testMatchID = "e2e-match"

// e2eVenue は均一グリッドのみの小会場を返す。
// 均一テンプレートでは座席IDとワイヤIDが一致するので、
// エンジン側とシミュレータ側の突き合わせがそのまま書ける。
func e2eVenue() *venue.Venue {
	return &venue.Venue{
		ID:   "e2e-hall",
		Name: "E2Eホール",
		Kind: venue.KindSmall,
		Sections: []venue.Section{
			{
				ID:       "5",
				Grade:    seat.GradeR,
				Polygon:  venue.Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
				Template: venue.Uniform(3, 4),
			},
			{
				ID:       "6",
				Grade:    seat.GradeS,
				Polygon:  venue.Polygon{{X: 10, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 10}},
				Template: venue.Uniform(2, 2),
			},
		},
	}
}

// testStack は1テスト分のシミュレータ一式
type testStack struct {
	srv   *httptest.Server
	store *store.MemoryStore
}

func newStack(t *testing.T) *testStack {
	t.Helper()
	st := store.NewMemoryStore()
	e := server.New(server.Deps{Store: st, HoldTTL: time.Minute})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return &testStack{srv: srv, store: st}
}

// engineFor はユーザー1人分のエンジン側一式を組み立てる
type userEngine struct {
	sess  *session.Session
	avail *application.AvailabilityService
	hold  *application.HoldService
}

func engineFor(t *testing.T, baseURL, userID string, opts ...ticketing.Option) *userEngine {
	t.Helper()
	sess, err := session.New(testMatchID, userID, e2eVenue(), 4)
	require.NoError(t, err)

	client := ticketing.New(baseURL, opts...)
	avail := application.NewAvailabilityService(client, sess, nil, nil)
	hold := application.NewHoldService(client, sess, avail, nil, nil)
	return &userEngine{sess: sess, avail: avail, hold: hold}
}

func TestBookingFlow_同期から確定まで(t *testing.T) {
	stack := newStack(t)
	ctx := context.Background()
	eng := engineFor(t, stack.srv.URL, "user-a")

	// 初回同期。誰も確保していないので空振りになる
	require.NoError(t, eng.avail.SyncSection(ctx, "5"))
	assert.Equal(t, 0, eng.sess.TakenCount())

	added, err := eng.sess.Toggle("5", "5-1-1")
	require.NoError(t, err)
	require.True(t, added)
	added, err = eng.sess.Toggle("5", "5-1-2")
	require.NoError(t, err)
	require.True(t, added)

	require.NoError(t, eng.hold.Hold(ctx))
	assert.Equal(t, booking.PhaseHeld, eng.hold.Phase())

	res, err := eng.hold.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, testMatchID, res.MatchID)
	assert.Equal(t, 1, res.UserRank)
	assert.Equal(t, 1, res.TotalRank)
	assert.Equal(t, booking.PhaseConfirmed, eng.hold.Phase())

	// 確定後の再同期では自席が MY_RESERVED として返り、
	// 表示上は確保済み扱いになる
	require.NoError(t, eng.avail.SyncSection(ctx, "5"))
	assert.True(t, eng.sess.IsTaken("5-1-1"))
	assert.True(t, eng.sess.IsTaken("5-1-2"))
}

func TestBookingFlow_競合に敗れると選択解除と是正同期(t *testing.T) {
	stack := newStack(t)
	ctx := context.Background()
	eng := engineFor(t, stack.srv.URL, "user-a")

	// 同期した時点では空席に見える
	require.NoError(t, eng.avail.SyncSection(ctx, "5"))
	added, err := eng.sess.Toggle("5", "5-1-1")
	require.NoError(t, err)
	require.True(t, added)

	// 別ユーザーが先に同じ座席を確保する
	rival := ticketing.New(stack.srv.URL)
	res, err := rival.Hold(ctx, booking.HoldRequest{
		MatchID: testMatchID,
		UserID:  "rival",
		Seats: []seat.WireRef{
			{SectionID: "5", Row: 1, Col: 1, Grade: seat.GradeR},
		},
		TotalSeats: e2eVenue().TotalSeats(),
	})
	require.NoError(t, err)
	require.False(t, res.Rejected())

	// こちらのホールドは全体が拒否され、選択は消える
	err = eng.hold.Hold(ctx)
	require.ErrorIs(t, err, booking.ErrHoldRejected)
	assert.Equal(t, booking.PhaseIdle, eng.hold.Phase())
	assert.Empty(t, eng.sess.Selection())

	// 是正同期は拒否処理の中で完了しているので、
	// 奪われた座席は確保済みとして見え、再選択できない
	assert.False(t, eng.sess.CorrectivePending("5"))
	assert.True(t, eng.sess.IsTaken("5-1-1"))
	_, err = eng.sess.Toggle("5", "5-1-1")
	assert.ErrorIs(t, err, session.ErrSeatUnavailable)

	// 別の座席なら改めて確保できる
	added, err = eng.sess.Toggle("5", "5-2-1")
	require.NoError(t, err)
	require.True(t, added)
	require.NoError(t, eng.hold.Hold(ctx))
	assert.Equal(t, booking.PhaseHeld, eng.hold.Phase())
}

func TestBookingFlow_キャンセルで座席が解放される(t *testing.T) {
	stack := newStack(t)
	ctx := context.Background()
	eng := engineFor(t, stack.srv.URL, "user-a")

	_, err := eng.sess.Toggle("6", "6-1-1")
	require.NoError(t, err)
	require.NoError(t, eng.hold.Hold(ctx))

	// 確保中は他ユーザーから取れない
	rival := ticketing.New(stack.srv.URL)
	ref := []seat.WireRef{{SectionID: "6", Row: 1, Col: 1, Grade: seat.GradeS}}
	res, err := rival.Hold(ctx, booking.HoldRequest{
		MatchID: testMatchID, UserID: "rival", Seats: ref, TotalSeats: e2eVenue().TotalSeats(),
	})
	require.NoError(t, err)
	assert.True(t, res.Rejected())

	require.NoError(t, eng.hold.Cancel(ctx))
	assert.Equal(t, booking.PhaseIdle, eng.hold.Phase())
	assert.Empty(t, eng.sess.Selection())

	// 解放済みなので今度は確保できる
	res, err = rival.Hold(ctx, booking.HoldRequest{
		MatchID: testMatchID, UserID: "rival", Seats: ref, TotalSeats: e2eVenue().TotalSeats(),
	})
	require.NoError(t, err)
	assert.False(t, res.Rejected())
}

func TestBookingFlow_確定順にランクが付く(t *testing.T) {
	stack := newStack(t)
	ctx := context.Background()

	first := engineFor(t, stack.srv.URL, "user-a")
	second := engineFor(t, stack.srv.URL, "user-b")

	_, err := first.sess.Toggle("5", "5-1-1")
	require.NoError(t, err)
	require.NoError(t, first.hold.Hold(ctx))

	_, err = second.sess.Toggle("5", "5-1-2")
	require.NoError(t, err)
	require.NoError(t, second.hold.Hold(ctx))

	resA, err := first.hold.Confirm(ctx)
	require.NoError(t, err)
	resB, err := second.hold.Confirm(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, resA.UserRank)
	assert.Equal(t, 2, resB.UserRank)
	assert.Equal(t, 2, resB.TotalRank)
}

func TestBookingFlow_認証付きサーバーでも一連の操作が通る(t *testing.T) {
	st := store.NewMemoryStore()
	issuer := auth.NewIssuer("e2e-secret", time.Hour)
	e := server.New(server.Deps{Store: st, HoldTTL: time.Minute, Issuer: issuer})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	ctx := context.Background()

	// トークンなしのクライアントは拒否される
	anon := ticketing.New(srv.URL)
	_, err := anon.SectionStatus(ctx, testMatchID, "5", "user-a")
	require.Error(t, err)

	token, err := issuer.Issue("user-a")
	require.NoError(t, err)
	eng := engineFor(t, srv.URL, "user-a", ticketing.WithBearerToken(token))

	require.NoError(t, eng.avail.SyncSection(ctx, "5"))
	_, err = eng.sess.Toggle("5", "5-3-4")
	require.NoError(t, err)
	require.NoError(t, eng.hold.Hold(ctx))

	res, err := eng.hold.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.UserRank)
}

func TestBookingFlow_ボットと競争しても整合が保たれる(t *testing.T) {
	stack := newStack(t)
	ctx := context.Background()

	squad := bots.NewSquad(bots.Config{
		MatchID: testMatchID,
		Venue:   e2eVenue(),
		Count:   2,
		NewClient: func(string) booking.Client {
			return ticketing.New(stack.srv.URL)
		},
		MinInterval:  5 * time.Millisecond,
		MaxInterval:  10 * time.Millisecond,
		SeatsPerHold: 1,
		Seed:         42,
	})
	squad.Start(ctx)
	t.Cleanup(squad.Stop)

	// ボットがどこかの座席を確定するまで待つ
	require.Eventually(t, func() bool {
		for _, sec := range []string{"5", "6"} {
			states, err := stack.store.SectionStatuses(ctx, testMatchID, sec)
			if err != nil {
				return false
			}
			if len(states) > 0 {
				return true
			}
		}
		return false
	}, 3*time.Second, 20*time.Millisecond)

	// ボットが取った座席は同期後に選択できない
	eng := engineFor(t, stack.srv.URL, "user-a")
	require.NoError(t, eng.avail.SyncSection(ctx, "5"))
	require.NoError(t, eng.avail.SyncSection(ctx, "6"))

	for _, sec := range eng.sess.Venue().Sections {
		states, err := stack.store.SectionStatuses(ctx, testMatchID, sec.ID)
		require.NoError(t, err)
		for _, s := range states {
			assert.True(t, eng.sess.IsTaken(s.SeatID), "確保済み座席 %s が選択可能に見える", s.SeatID)
		}
	}
}
