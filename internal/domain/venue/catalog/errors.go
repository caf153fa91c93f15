package catalog

import "errors"

var (
	ErrVenueNotFound = errors.New("会場が見つかりません")
	ErrVenueExists   = errors.New("会場IDが既に登録されています")
)
