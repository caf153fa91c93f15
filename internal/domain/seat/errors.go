package seat

import "errors"

// Seat ドメインのエラー定義
var (
	ErrUnknownGrade  = errors.New("未知の座席等級です")
	ErrInvalidSeatID = errors.New("座席識別子の形式が不正です")
	ErrSeatNotFound  = errors.New("座席が見つかりません")
	ErrSeatTaken     = errors.New("座席は既に確保されています")
)
