package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-club-seat-reservation/internal/application"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/client"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/domainerr"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/pricing"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/tariff"
	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

var badRequestErrors = []error{
	reservation.ErrInvalidInterval,
	reservation.ErrDurationExceeded,
	reservation.ErrInvalidStatus,
	reservation.ErrNegativeCost,
	reservation.ErrUnknownPolicy,
	pricing.ErrUnknownPricing,
	pricing.ErrNoTariff,
	seat.ErrInvalidType,
	seat.ErrInvalidStatus,
	client.ErrNameRequired,
	client.ErrContactRequired,
	client.ErrInvalidContact,
	tariff.ErrNegativeRate,
	tariff.ErrInvalidDiscount,
	tariff.ErrInvalidWindow,
	tariff.ErrInvalidInterval,
}

var conflictErrors = []error{
	reservation.ErrSeatUnavailable,
	reservation.ErrInvalidTransition,
	client.ErrContactDuplicate,
	application.ErrSeatBusy,
}

// StatusCode はドメインのエラーをHTTPステータスに対応付ける
func StatusCode(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	switch {
	case errors.Is(err, domainerr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrStorage):
		return http.StatusInternalServerError
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

// ToHTTPError はドメインのエラーを echo.HTTPError に変換する
// 5xx の場合は内部のエラー内容をレスポンスに含めない
func ToHTTPError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	code := StatusCode(err)
	if code >= http.StatusInternalServerError {
		return echo.NewHTTPError(code, "内部サーバーエラー").SetInternal(err)
	}
	return echo.NewHTTPError(code, err.Error()).SetInternal(err)
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he := ToHTTPError(err)
	code := he.Code
	message, ok := he.Message.(string)
	if !ok {
		message = http.StatusText(code)
	}

	// エラーログを出力（5xx エラーの場合）
	if code >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{Error: message, Code: code})
	}
	if err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
