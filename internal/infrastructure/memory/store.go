// Package memory はプロセス内に状態を保持するストア実装
//
// トランザクションはコピーオンライト方式で、同時に書き込めるのは1トランザクションのみ。
// Commit で作業コピーを確定状態と差し替え、Rollback で破棄する。
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/client"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/transaction"
)

var (
	ErrTxDone    = errors.New("トランザクションは既に終了しています")
	ErrForeignTx = errors.New("このストアのトランザクションではありません")
)

type state struct {
	seats        map[int64]*seat.Seat
	reservations map[int64]*reservation.Reservation
	clients      map[int64]*client.Client
	nextSeatID   int64
	nextResvID   int64
	nextClientID int64
}

func newState() *state {
	return &state{
		seats:        make(map[int64]*seat.Seat),
		reservations: make(map[int64]*reservation.Reservation),
		clients:      make(map[int64]*client.Client),
	}
}

func (s *state) clone() *state {
	c := &state{
		seats:        make(map[int64]*seat.Seat, len(s.seats)),
		reservations: make(map[int64]*reservation.Reservation, len(s.reservations)),
		clients:      make(map[int64]*client.Client, len(s.clients)),
		nextSeatID:   s.nextSeatID,
		nextResvID:   s.nextResvID,
		nextClientID: s.nextClientID,
	}
	for id, v := range s.seats {
		c.seats[id] = v.Clone()
	}
	for id, v := range s.reservations {
		cp := *v
		c.reservations[id] = &cp
	}
	for id, v := range s.clients {
		cp := *v
		c.clients[id] = &cp
	}
	return c
}

// sortedIDs はIDの昇順（挿入順）を返す
func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Store はインメモリストア。transaction.Manager を実装する
type Store struct {
	// writer は書き込みトランザクションのセマフォ（context でキャンセル可能にするためチャネル）
	writer chan struct{}
	mu     sync.RWMutex
	state  *state
}

// NewStore は空のストアを作成する
func NewStore() *Store {
	return &Store{
		writer: make(chan struct{}, 1),
		state:  newState(),
	}
}

// Tx はインメモリストアのトランザクション
type Tx struct {
	store *Store
	state *state
	done  bool
}

// Begin は書き込みトランザクションを開始する。他の書き込みが終わるまで待つ
func (s *Store) Begin(ctx context.Context) (transaction.Tx, error) {
	select {
	case s.writer <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &Tx{store: s, state: s.snapshot().clone()}, nil
}

func (t *Tx) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	t.store.mu.Lock()
	t.store.state = t.state
	t.store.mu.Unlock()
	<-t.store.writer
	return nil
}

func (t *Tx) Rollback() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	<-t.store.writer
	return nil
}

// snapshot は確定済みの状態を返す。返り値は変更してはならない
func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// read は tx があればその作業コピー、なければ確定状態を返す
func (s *Store) read(tx transaction.Tx) (*state, error) {
	if tx == nil {
		return s.snapshot(), nil
	}
	return s.unwrap(tx)
}

func (s *Store) unwrap(tx transaction.Tx) (*state, error) {
	t, ok := tx.(*Tx)
	if !ok || t.store != s {
		return nil, ErrForeignTx
	}
	if t.done {
		return nil, ErrTxDone
	}
	return t.state, nil
}

// write は tx の作業コピーに fn を適用する。tx が nil なら単独トランザクションで実行する
func (s *Store) write(ctx context.Context, tx transaction.Tx, fn func(st *state) error) error {
	if tx != nil {
		st, err := s.unwrap(tx)
		if err != nil {
			return err
		}
		return fn(st)
	}
	return transaction.Run(ctx, s, func(tx transaction.Tx) error {
		return fn(tx.(*Tx).state)
	})
}

var _ transaction.Manager = (*Store)(nil)
