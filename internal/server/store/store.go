// Package store はシミュレータの座席占有状態を管理する。
// 実装はメモリ版とPostgres版があり、どちらも先勝ちの
// ホールド調停を提供する。
package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNothingHeld      = errors.New("ホールド中の座席がありません")
	ErrAlreadyConfirmed = errors.New("すでに購入確定済みです")
)

// HoldStatus は占有レコードの状態
type HoldStatus string

const (
	HoldStatusHeld      HoldStatus = "held"
	HoldStatusConfirmed HoldStatus = "confirmed"
)

// SeatState は占有中の一座席の状態を表す。
// SeatID はワイヤ形式 {区域}-{列}-{カラム} の識別子。
type SeatState struct {
	SeatID string
	UserID string
	Status HoldStatus
}

// ConfirmOutcome は購入確定の結果。着順は確定順で数える。
type ConfirmOutcome struct {
	Seats     []string
	UserRank  int
	TotalRank int
}

// Store は公演ごとの座席占有を管理する
type Store interface {
	// SectionStatuses は区域内の占有中座席を返す。
	// 空席は含まれない。
	SectionStatuses(ctx context.Context, matchID, sectionID string) ([]SeatState, error)

	// Hold は座席の一括確保を試みる。先勝ちの全量判定で、
	// 1席でも取れなければ競合座席を返して何も確保しない。
	// 成功時は同一利用者の既存ホールドを置き換える。
	Hold(ctx context.Context, matchID, userID string, seatIDs []string, ttl time.Duration) (failed []string, err error)

	// Confirm は利用者のホールドを購入確定にする
	Confirm(ctx context.Context, matchID, userID string) (ConfirmOutcome, error)

	// Release は利用者の未確定ホールドを解放する
	Release(ctx context.Context, matchID, userID string) (int, error)

	// ReleaseExpired は期限切れホールドを解放して件数を返す
	ReleaseExpired(ctx context.Context) (int, error)
}
