// Package domainerr はドメインをまたいで共有するエラー種別を定義する
package domainerr

import "errors"

var (
	// ErrNotFound は対象（予約・座席・クライアント）が存在しないことを表す
	ErrNotFound = errors.New("対象が見つかりません")

	// ErrStorage はストアでの失敗（制約違反、接続断など）を表す
	ErrStorage = errors.New("ストレージエラー")
)

// Storage はストアのエラーを ErrStorage でラップする
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &storageError{op: op, err: err}
}

type storageError struct {
	op  string
	err error
}

func (e *storageError) Error() string {
	return e.op + ": " + e.err.Error()
}

func (e *storageError) Unwrap() []error {
	return []error{ErrStorage, e.err}
}
