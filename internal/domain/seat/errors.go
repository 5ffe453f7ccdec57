package seat

import (
	"errors"
	"fmt"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/domainerr"
)

// Seat ドメインのエラー定義
var (
	ErrSeatNotFound  = fmt.Errorf("座席が見つかりません: %w", domainerr.ErrNotFound)
	ErrInvalidType   = errors.New("座席の種別が不正です")
	ErrInvalidStatus = errors.New("座席の状態が不正です")
)
