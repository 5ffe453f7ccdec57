package tariff

import "errors"

// Tariff ドメインのエラー定義
var (
	ErrNegativeRate      = errors.New("基本料金は0以上である必要があります")
	ErrInvalidDiscount   = errors.New("割引率は0から100の範囲である必要があります")
	ErrInvalidWindow     = errors.New("割引期間の開始は終了より前である必要があります")
	ErrInvalidInterval   = errors.New("開始時刻は終了時刻より前である必要があります")
	ErrInvalidPeriod     = errors.New("料金区分が不正です")
	ErrTariffNameMissing = errors.New("料金プラン名は必須です")
)
