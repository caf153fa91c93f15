package venue

import "errors"

// Venue ドメインのエラー定義
var (
	ErrEmptyTemplate      = errors.New("グリッドテンプレートが空です")
	ErrRaggedTemplate     = errors.New("グリッドテンプレートの行の長さが揃っていません")
	ErrInvalidCell        = errors.New("グリッドテンプレートに不正なセルがあります")
	ErrNoSections         = errors.New("会場に区域が定義されていません")
	ErrDuplicateSection   = errors.New("区域IDが重複しています")
	ErrSectionNotFound    = errors.New("区域が見つかりません")
	ErrNoOccupiableSeats  = errors.New("着席可能な座席が1つもありません")
	ErrMissingTemplate    = errors.New("区域にグリッドテンプレートがありません")
	ErrInvalidGrade       = errors.New("区域の座席等級が不正です")
	ErrEmptyPolygon       = errors.New("区域の輪郭ポリゴンが空です")
)
