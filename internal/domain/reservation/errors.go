package reservation

import (
	"errors"
	"fmt"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/domainerr"
)

// Reservation ドメインのエラー定義
var (
	ErrInvalidInterval     = errors.New("終了時刻は開始時刻より後である必要があります")
	ErrDurationExceeded    = errors.New("予約時間は24時間以内である必要があります")
	ErrSeatUnavailable     = errors.New("座席は指定の時間帯に予約できません")
	ErrReservationNotFound = fmt.Errorf("予約が見つかりません: %w", domainerr.ErrNotFound)
	ErrInvalidTransition   = errors.New("予約の状態を遷移できません")
	ErrInvalidStatus       = errors.New("予約の状態が不正です")
	ErrNegativeCost        = errors.New("料金は0以上である必要があります")
	ErrUnknownPolicy       = errors.New("不明な空き判定ポリシーです")
)
