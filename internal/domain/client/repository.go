package client

import "context"

// Repository は顧客リポジトリのインターフェース
type Repository interface {
	// Create は顧客を登録し、採番したIDを設定する
	Create(ctx context.Context, client *Client) error

	// GetByID はIDから顧客を取得する
	GetByID(ctx context.Context, id int64) (*Client, error)

	// Search は名前または連絡先に query を含む顧客をID順に取得する（空文字は全件）
	Search(ctx context.Context, query string) ([]*Client, error)

	// UpdateContact は連絡先を更新する
	UpdateContact(ctx context.Context, id int64, contact string) error
}
