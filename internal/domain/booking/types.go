// Package booking はチケッティングAPIとのホールド手順の
// 型とクライアント契約を定義する。
package booking

import (
	"context"

	"github.com/tickget/go-seatmap-engine/internal/domain/seat"
)

// HoldRequest はホールド要求1回分を表す
type HoldRequest struct {
	MatchID    string
	UserID     string
	Seats      []seat.WireRef
	TotalSeats int
}

// HoldResult はホールド要求の結果を表す。
// 全席確保できなければ Success は false で、部分成功はない。
type HoldResult struct {
	Success     bool
	Message     string
	HeldSeats   []string
	FailedSeats []string
}

// Rejected は要求が拒否されたかを返す。
// failedSeats が1つでもあれば全体が拒否扱いになる。
func (r HoldResult) Rejected() bool {
	return !r.Success || len(r.FailedSeats) > 0
}

// ConfirmResult は購入確定の結果を表す
type ConfirmResult struct {
	MatchID   string
	UserRank  int
	TotalRank int
}

// Client はチケッティングAPIへの操作を表す。
// 実装は infrastructure 層にある。
type Client interface {
	// SectionStatus は区域の座席状況を取得する
	SectionStatus(ctx context.Context, matchID, sectionID, userID string) ([]seat.StatusEntry, error)

	// Hold は選択座席の一括確保を要求する。
	// 競合はエラーではなく Success=false で返る。
	Hold(ctx context.Context, req HoldRequest) (HoldResult, error)

	// Confirm はホールド済み座席の購入を確定する
	Confirm(ctx context.Context, matchID, userID string) (ConfirmResult, error)

	// Cancel はホールドを解放する
	Cancel(ctx context.Context, matchID, userID string) error
}
