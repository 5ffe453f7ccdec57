package reservation

import (
	"fmt"
	"strings"
)

// ConflictPolicy は既存予約と新しい時間帯の衝突判定方法
type ConflictPolicy string

const (
	// PolicyBoundary は既存予約の開始または終了が新しい時間帯 [start, end] に含まれる場合に衝突とみなす
	// 既存予約が新しい時間帯を完全に包含するケースは検出しない
	PolicyBoundary ConflictPolicy = "boundary"

	// PolicyInterval は区間が重なる場合に衝突とみなす（existing.start < end かつ existing.end > start）
	// 境界で接するだけの予約は衝突しない
	PolicyInterval ConflictPolicy = "interval"
)

// ParseConflictPolicy は設定値からポリシーを取得する（空文字は boundary）
func ParseConflictPolicy(v string) (ConflictPolicy, error) {
	switch ConflictPolicy(strings.ToLower(strings.TrimSpace(v))) {
	case "", PolicyBoundary:
		return PolicyBoundary, nil
	case PolicyInterval:
		return PolicyInterval, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, v)
}

// Conflicts は既存予約 existing が slot と衝突するかを返す
// 時刻はストアと同じく epoch 秒で比較する
func (p ConflictPolicy) Conflicts(existing *Reservation, slot TimeSlot) bool {
	if !existing.Status.Blocking() {
		return false
	}
	es, ee := existing.Start.Unix(), existing.End.Unix()
	ss, se := slot.Start.Unix(), slot.End.Unix()
	if p == PolicyInterval {
		return es < se && ee > ss
	}
	return (es >= ss && es <= se) || (ee >= ss && ee <= se)
}
