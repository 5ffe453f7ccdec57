package seat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeat(t *testing.T) {
	s := NewSeat(TypeGaming, "RTX 4070")

	assert.Equal(t, TypeGaming, s.Type)
	assert.Equal(t, StatusFree, s.Status)
	assert.Equal(t, "RTX 4070", s.HardwareSpec)
	assert.Zero(t, s.ID)
}

func TestStatus_Encoding(t *testing.T) {
	// 永続化されている値と互換であること
	assert.Equal(t, 0, int(StatusFree))
	assert.Equal(t, 1, int(StatusReserved))
	assert.Equal(t, 2, int(StatusOccupied))
	assert.Equal(t, 3, int(StatusMaintenance))
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Status
		wantErr bool
	}{
		{"free", "free", StatusFree, false},
		{"大文字", "RESERVED", StatusReserved, false},
		{"occupied", "occupied", StatusOccupied, false},
		{"maintenance", "maintenance", StatusMaintenance, false},
		{"不明", "broken", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseType(t *testing.T) {
	got, err := ParseType("VIP")
	require.NoError(t, err)
	assert.Equal(t, TypeVIP, got)
	assert.Equal(t, "conference", TypeConference.String())

	_, err = ParseType("sofa")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestSeat_SetStatus(t *testing.T) {
	s := NewSeat(TypeStandard, "")

	assert.False(t, s.SetStatus(StatusFree))
	assert.True(t, s.SetStatus(StatusReserved))
	assert.Equal(t, StatusReserved, s.Status)
	assert.False(t, s.IsFree())
}

func TestSeat_UpdateHardware(t *testing.T) {
	s := NewSeat(TypeStandard, DefaultHardwareSpec)

	s.UpdateHardware("")
	assert.Equal(t, DefaultHardwareSpec, s.HardwareSpec)

	s.UpdateHardware("CPU: Ryzen 7")
	assert.Equal(t, "CPU: Ryzen 7", s.HardwareSpec)
}

func TestSeat_Clone(t *testing.T) {
	s := &Seat{ID: 5, Type: TypeVIP, Status: StatusFree}
	c := s.Clone()
	c.Status = StatusOccupied

	assert.Equal(t, StatusFree, s.Status)
	assert.Equal(t, int64(5), c.ID)
}

func TestSeat_Validate(t *testing.T) {
	tests := []struct {
		name        string
		seat        *Seat
		expectedErr error
	}{
		{"有効な座席", &Seat{Type: TypeStandard, Status: StatusFree}, nil},
		{"不正な種別", &Seat{Type: Type(9), Status: StatusFree}, ErrInvalidType},
		{"不正な状態", &Seat{Type: TypeVIP, Status: Status(-1)}, ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.seat.Validate()
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
