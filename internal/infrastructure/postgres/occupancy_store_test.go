package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickget/go-seatmap-engine/internal/config"
	"github.com/tickget/go-seatmap-engine/internal/server/store"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := NewConnection(&config.DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "postgres",
		DBName:   "seatmap_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Skip("PostgreSQL not available")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := Ping(ctx, db); err != nil {
		t.Skip("PostgreSQL not available")
	}
	if err := RunMigrations(db.DB, "../../../migrations"); err != nil {
		t.Skipf("migration failed: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.Exec(`TRUNCATE seat_holds, match_participants`)
		_ = db.Close()
	})
	_, err = db.Exec(`TRUNCATE seat_holds, match_participants`)
	require.NoError(t, err)
	return db
}

func TestOccupancyStore_ホールドは先勝ちで全量拒否(t *testing.T) {
	st := NewOccupancyStore(testDB(t))
	ctx := context.Background()

	failed, err := st.Hold(ctx, "m1", "alice", []string{"5-1-1", "5-1-2"}, time.Minute)
	require.NoError(t, err)
	require.Empty(t, failed)

	// 1席でも重なると両方とも取れない
	failed, err = st.Hold(ctx, "m1", "bob", []string{"5-1-2", "5-1-3"}, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []string{"5-1-2"}, failed)

	states, err := st.SectionStatuses(ctx, "m1", "5")
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, "alice", states[0].UserID)
	assert.Equal(t, store.HoldStatusHeld, states[0].Status)
}

func TestOccupancyStore_再ホールドは自分の既存分を置き換える(t *testing.T) {
	st := NewOccupancyStore(testDB(t))
	ctx := context.Background()

	_, err := st.Hold(ctx, "m1", "alice", []string{"5-1-1"}, time.Minute)
	require.NoError(t, err)
	failed, err := st.Hold(ctx, "m1", "alice", []string{"5-2-1", "5-2-2"}, time.Minute)
	require.NoError(t, err)
	require.Empty(t, failed)

	// 元の座席は解放済みで他ユーザーが取れる
	failed, err = st.Hold(ctx, "m1", "bob", []string{"5-1-1"}, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, failed)
}

func TestOccupancyStore_確定と着順(t *testing.T) {
	st := NewOccupancyStore(testDB(t))
	ctx := context.Background()

	_, err := st.Hold(ctx, "m1", "alice", []string{"5-1-1"}, time.Minute)
	require.NoError(t, err)
	_, err = st.Hold(ctx, "m1", "bob", []string{"5-1-2"}, time.Minute)
	require.NoError(t, err)

	out, err := st.Confirm(ctx, "m1", "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"5-1-2"}, out.Seats)
	assert.Equal(t, 1, out.UserRank)
	assert.Equal(t, 2, out.TotalRank)

	out, err = st.Confirm(ctx, "m1", "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, out.UserRank)

	// 二重確定は拒否
	_, err = st.Confirm(ctx, "m1", "bob")
	assert.ErrorIs(t, err, store.ErrAlreadyConfirmed)

	// ホールドなしの確定も拒否
	_, err = st.Confirm(ctx, "m1", "carol")
	assert.ErrorIs(t, err, store.ErrNothingHeld)
}

func TestOccupancyStore_解放と期限切れ回収(t *testing.T) {
	st := NewOccupancyStore(testDB(t))
	ctx := context.Background()

	_, err := st.Hold(ctx, "m1", "alice", []string{"5-1-1", "5-1-2"}, time.Minute)
	require.NoError(t, err)
	released, err := st.Release(ctx, "m1", "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, released)

	// 期限0のホールドは回収対象になる
	_, err = st.Hold(ctx, "m1", "bob", []string{"5-2-1"}, 0)
	require.NoError(t, err)
	swept, err := st.ReleaseExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	states, err := st.SectionStatuses(ctx, "m1", "5")
	require.NoError(t, err)
	assert.Empty(t, states)
}
