package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrInvalidTransition = errors.New("許可されていない状態遷移です")
	ErrNothingSelected   = errors.New("座席が選択されていません")
	ErrHoldRejected      = errors.New("座席を確保できませんでした")
	ErrRequestInFlight   = errors.New("同じ操作が進行中です")
)
