package client

import (
	"errors"
	"fmt"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/domainerr"
)

var (
	ErrClientNotFound   = fmt.Errorf("顧客が見つかりません: %w", domainerr.ErrNotFound)
	ErrNameRequired     = errors.New("顧客名は必須です")
	ErrContactRequired  = errors.New("連絡先は必須です")
	ErrInvalidContact   = errors.New("連絡先の形式が不正です（+7XXXXXXXXXX またはメールアドレス）")
	ErrContactDuplicate = errors.New("この連絡先は既に登録されています")
)
