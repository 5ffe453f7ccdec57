package application

import "errors"

var (
	// ErrSeatBusy は他のインスタンスが同じ座席を処理中の場合に返る
	ErrSeatBusy = errors.New("座席は他の処理で使用中です")
)
