package session

import "errors"

// Session ドメインのエラー定義
var (
	ErrReadOnly        = errors.New("閲覧専用のため座席は選択できません")
	ErrSeatUnavailable = errors.New("既に確保された座席です")
	ErrSelectionFull   = errors.New("選択可能な座席数の上限に達しています")
	ErrSyncOutstanding = errors.New("区域の再同期が完了していません")
	ErrSectionUnknown  = errors.New("この公演に存在しない区域です")
	ErrSeatUnknown     = errors.New("区域に存在しない座席です")
)
