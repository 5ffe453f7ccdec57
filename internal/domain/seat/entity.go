package seat

import (
	"fmt"
	"strings"
)

// Status は座席の状態を表す（値は永続化されるため変更しないこと）
type Status int

const (
	StatusFree        Status = 0
	StatusReserved    Status = 1
	StatusOccupied    Status = 2
	StatusMaintenance Status = 3
)

var statusNames = map[Status]string{
	StatusFree:        "free",
	StatusReserved:    "reserved",
	StatusOccupied:    "occupied",
	StatusMaintenance: "maintenance",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// IsValid は永続化可能な状態かを返す
func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus は名前から状態を取得する
func ParseStatus(name string) (Status, error) {
	for st, n := range statusNames {
		if strings.EqualFold(n, name) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, name)
}

// Type は座席の種別を表す
type Type int

const (
	TypeStandard   Type = 0
	TypeVIP        Type = 1
	TypeGaming     Type = 2
	TypeConference Type = 3
)

var typeNames = map[Type]string{
	TypeStandard:   "standard",
	TypeVIP:        "vip",
	TypeGaming:     "gaming",
	TypeConference: "conference",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

func (t Type) IsValid() bool {
	_, ok := typeNames[t]
	return ok
}

// ParseType は名前から種別を取得する
func ParseType(name string) (Type, error) {
	for tp, n := range typeNames {
		if strings.EqualFold(n, name) {
			return tp, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidType, name)
}

// DefaultHardwareSpec は初期化時に投入する座席の構成
const DefaultHardwareSpec = "CPU: Intel i5, RAM: 16GB, GPU: NVIDIA GTX 1660"

// Seat は座席エンティティを表す
type Seat struct {
	ID           int64
	Type         Type
	Status       Status
	HardwareSpec string
}

// NewSeat は空き状態の新しい座席を作成する
func NewSeat(seatType Type, hardwareSpec string) *Seat {
	return &Seat{
		Type:         seatType,
		Status:       StatusFree,
		HardwareSpec: hardwareSpec,
	}
}

// IsFree は座席が空いているかを返す
func (s *Seat) IsFree() bool {
	return s.Status == StatusFree
}

// SetStatus は状態を変更し、変化があったかを返す
func (s *Seat) SetStatus(status Status) bool {
	if s.Status == status {
		return false
	}
	s.Status = status
	return true
}

// UpdateHardware は構成を更新する（空文字は無視）
func (s *Seat) UpdateHardware(spec string) {
	if spec != "" {
		s.HardwareSpec = spec
	}
}

// Clone はスナップショット用のコピーを返す
func (s *Seat) Clone() *Seat {
	c := *s
	return &c
}

// Validate は座席の検証を行う
func (s *Seat) Validate() error {
	if !s.Type.IsValid() {
		return ErrInvalidType
	}
	if !s.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}
