package reservation

// Filter は予約検索の条件。指定した条件の AND で絞り込む
type Filter struct {
	ClientID *int64
	SeatID   *int64
	Status   Status
}

// NewFilter は全件に一致する条件を返す
func NewFilter() Filter {
	return Filter{Status: StatusAny}
}

func (f Filter) WithClient(id int64) Filter {
	f.ClientID = &id
	return f
}

func (f Filter) WithSeat(id int64) Filter {
	f.SeatID = &id
	return f
}

func (f Filter) WithStatus(s Status) Filter {
	f.Status = s
	return f
}

// Match は予約が条件に一致するかを返す
func (f Filter) Match(r *Reservation) bool {
	if f.ClientID != nil && r.ClientID != *f.ClientID {
		return false
	}
	if f.SeatID != nil && r.SeatID != *f.SeatID {
		return false
	}
	if f.Status != StatusAny && r.Status != f.Status {
		return false
	}
	return true
}
