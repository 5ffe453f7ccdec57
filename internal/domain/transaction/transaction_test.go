package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeManager struct {
	tx       *fakeTx
	beginErr error
}

func (m *fakeManager) Begin(ctx context.Context) (Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return m.tx, nil
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("成功時はコミットする", func(t *testing.T) {
		m := &fakeManager{tx: &fakeTx{}}
		err := Run(ctx, m, func(tx Tx) error { return nil })
		require.NoError(t, err)
		assert.True(t, m.tx.committed)
		assert.False(t, m.tx.rolledBack)
	})

	t.Run("失敗時はロールバックしてエラーを返す", func(t *testing.T) {
		m := &fakeManager{tx: &fakeTx{}}
		boom := errors.New("boom")
		err := Run(ctx, m, func(tx Tx) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.True(t, m.tx.rolledBack)
		assert.False(t, m.tx.committed)
	})

	t.Run("開始に失敗した場合は fn を呼ばない", func(t *testing.T) {
		m := &fakeManager{beginErr: errors.New("no connection")}
		called := false
		err := Run(ctx, m, func(tx Tx) error { called = true; return nil })
		assert.Error(t, err)
		assert.False(t, called)
	})

	t.Run("コミットエラーを返す", func(t *testing.T) {
		m := &fakeManager{tx: &fakeTx{commitErr: errors.New("commit failed")}}
		err := Run(ctx, m, func(tx Tx) error { return nil })
		assert.EqualError(t, err, "commit failed")
	})
}
