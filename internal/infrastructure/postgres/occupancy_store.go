// Package postgres は座席占有ストアのPostgreSQL実装を提供する
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
	"github.com/tickget/go-seatmap-engine/internal/server/store"
)

type holdRow struct {
	SeatID string `db:"seat_id"`
	UserID string `db:"user_id"`
	Status string `db:"status"`
}

// OccupancyStore は seat_holds テーブルを使った占有ストア。
// 行ロックによる先勝ち調停で store.Store を実装する。
type OccupancyStore struct {
	db *sqlx.DB
}

// NewOccupancyStore はOccupancyStoreを作成する
func NewOccupancyStore(db *sqlx.DB) *OccupancyStore {
	return &OccupancyStore{db: db}
}

func (s *OccupancyStore) SectionStatuses(ctx context.Context, matchID, sectionID string) ([]store.SeatState, error) {
	query := `SELECT seat_id, user_id, status FROM seat_holds
		WHERE match_id = $1 AND section_id = $2
		AND (status = 'confirmed' OR expires_at > NOW())
		ORDER BY seat_id`

	var rows []holdRow
	if err := s.db.SelectContext(ctx, &rows, query, matchID, sectionID); err != nil {
		return nil, fmt.Errorf("座席状況の取得に失敗: %w", err)
	}

	states := make([]store.SeatState, len(rows))
	for i, r := range rows {
		states[i] = store.SeatState{
			SeatID: r.SeatID,
			UserID: r.UserID,
			Status: store.HoldStatus(r.Status),
		}
	}
	return states, nil
}

func (s *OccupancyStore) Hold(ctx context.Context, matchID, userID string, seatIDs []string, ttl time.Duration) ([]string, error) {
	var failed []string
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO match_participants (match_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			matchID, userID); err != nil {
			return fmt.Errorf("参加者登録に失敗: %w", err)
		}

		// 競合座席を行ロック付きで洗い出す。1席でもあれば全量拒否
		if err := tx.SelectContext(ctx, &failed,
			`SELECT seat_id FROM seat_holds
			WHERE match_id = $1 AND seat_id = ANY($2) AND user_id <> $3
			AND (status = 'confirmed' OR expires_at > NOW())
			ORDER BY seat_id FOR UPDATE`,
			matchID, pq.Array(seatIDs), userID); err != nil {
			return fmt.Errorf("競合確認に失敗: %w", err)
		}
		if len(failed) > 0 {
			return nil
		}

		// 自分の既存ホールドと、対象座席の期限切れ残骸を片付ける
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM seat_holds WHERE match_id = $1 AND status = 'held'
			AND (user_id = $2 OR (seat_id = ANY($3) AND expires_at <= NOW()))`,
			matchID, userID, pq.Array(seatIDs)); err != nil {
			return fmt.Errorf("既存ホールドの整理に失敗: %w", err)
		}

		for _, id := range seatIDs {
			ref, err := seat.ParseWireID(id)
			if err != nil {
				return fmt.Errorf("座席識別子が不正です: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO seat_holds (match_id, seat_id, section_id, user_id, status, expires_at)
				VALUES ($1, $2, $3, $4, 'held', NOW() + $5::interval)`,
				matchID, id, ref.SectionID, userID, fmt.Sprintf("%d milliseconds", ttl.Milliseconds())); err != nil {
				return fmt.Errorf("ホールド登録に失敗: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return failed, nil
}

func (s *OccupancyStore) Confirm(ctx context.Context, matchID, userID string) (store.ConfirmOutcome, error) {
	var out store.ConfirmOutcome
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var confirmedAt sql.NullTime
		err := tx.GetContext(ctx, &confirmedAt,
			`SELECT confirmed_at FROM match_participants
			WHERE match_id = $1 AND user_id = $2 FOR UPDATE`,
			matchID, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNothingHeld
		}
		if err != nil {
			return fmt.Errorf("参加者の取得に失敗: %w", err)
		}
		if confirmedAt.Valid {
			return store.ErrAlreadyConfirmed
		}

		if err := tx.SelectContext(ctx, &out.Seats,
			`UPDATE seat_holds SET status = 'confirmed', confirmed_at = NOW()
			WHERE match_id = $1 AND user_id = $2 AND status = 'held' AND expires_at > NOW()
			RETURNING seat_id`,
			matchID, userID); err != nil {
			return fmt.Errorf("ホールドの確定に失敗: %w", err)
		}
		if len(out.Seats) == 0 {
			return store.ErrNothingHeld
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE match_participants SET confirmed_at = NOW()
			WHERE match_id = $1 AND user_id = $2`,
			matchID, userID); err != nil {
			return fmt.Errorf("着順記録に失敗: %w", err)
		}

		if err := tx.GetContext(ctx, &out.UserRank,
			`SELECT COUNT(*) FROM match_participants
			WHERE match_id = $1 AND confirmed_at IS NOT NULL`,
			matchID); err != nil {
			return fmt.Errorf("着順集計に失敗: %w", err)
		}
		if err := tx.GetContext(ctx, &out.TotalRank,
			`SELECT COUNT(*) FROM match_participants WHERE match_id = $1`,
			matchID); err != nil {
			return fmt.Errorf("参加者集計に失敗: %w", err)
		}
		return nil
	})
	if err != nil {
		return store.ConfirmOutcome{}, err
	}
	return out, nil
}

func (s *OccupancyStore) Release(ctx context.Context, matchID, userID string) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM seat_holds WHERE match_id = $1 AND user_id = $2 AND status = 'held'`,
		matchID, userID)
	if err != nil {
		return 0, fmt.Errorf("ホールド解放に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

func (s *OccupancyStore) ReleaseExpired(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM seat_holds WHERE status = 'held' AND expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("期限切れホールドの回収に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

// withTx はトランザクション内で fn を実行する。
// fn がエラーを返せばロールバックする。
func (s *OccupancyStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("コミットに失敗: %w", err)
	}
	return nil
}

var _ store.Store = (*OccupancyStore)(nil)
