package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/client"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/domainerr"
)

const clientColumns = `id, name, contact, reg_date`

type clientRow struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Contact string `db:"contact"`
	RegDate int64  `db:"reg_date"`
}

func (r *clientRow) toEntity() *client.Client {
	return &client.Client{
		ID: r.ID, Name: r.Name, Contact: r.Contact,
		RegisteredAt: time.Unix(r.RegDate, 0).UTC(),
	}
}

type ClientRepository struct{ db *sqlx.DB }

func NewClientRepository(db *sqlx.DB) *ClientRepository { return &ClientRepository{db: db} }

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	query := `INSERT INTO clients (name, contact, reg_date) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, c.Name, c.Contact, c.RegisteredAt.Unix()).Scan(&c.ID); err != nil {
		return mapClientError("顧客登録", err)
	}
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*client.Client, error) {
	var row clientRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, client.ErrClientNotFound
		}
		return nil, domainerr.Storage("顧客取得", err)
	}
	return row.toEntity(), nil
}

func (r *ClientRepository) Search(ctx context.Context, query string) ([]*client.Client, error) {
	var rows []clientRow
	stmt := `SELECT ` + clientColumns + ` FROM clients`
	var args []interface{}
	if q := strings.TrimSpace(query); q != "" {
		stmt += ` WHERE name ILIKE $1 OR contact ILIKE $1`
		args = append(args, "%"+escapeLike(q)+"%")
	}
	stmt += ` ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		return nil, domainerr.Storage("顧客検索", err)
	}
	clients := make([]*client.Client, len(rows))
	for i, row := range rows {
		clients[i] = row.toEntity()
	}
	return clients, nil
}

func (r *ClientRepository) UpdateContact(ctx context.Context, id int64, contact string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE clients SET contact = $1 WHERE id = $2`, contact, id)
	if err != nil {
		return mapClientError("顧客連絡先更新", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return client.ErrClientNotFound
	}
	return nil
}

// PostgreSQL のエラーコード
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

func mapClientError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return client.ErrContactDuplicate
	}
	return domainerr.Storage(op, err)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

var _ client.Repository = (*ClientRepository)(nil)
