package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/client"
	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/logger"
)

// ClientService は顧客の登録と参照を行う
type ClientService struct {
	repo client.Repository
}

func NewClientService(cr client.Repository) *ClientService {
	return &ClientService{repo: cr}
}

func (s *ClientService) CreateClient(ctx context.Context, name, contact string) (*client.Client, error) {
	c, err := client.NewClient(name, contact)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.Info("顧客を登録", zap.Int64("client_id", c.ID))
	return c, nil
}

func (s *ClientService) GetClient(ctx context.Context, id int64) (*client.Client, error) {
	return s.repo.GetByID(ctx, id)
}

// FindClients は名前または連絡先に query を含む顧客を返す（大文字小文字を区別しない）
func (s *ClientService) FindClients(ctx context.Context, query string) ([]*client.Client, error) {
	return s.repo.Search(ctx, query)
}

func (s *ClientService) UpdateContact(ctx context.Context, id int64, contact string) (*client.Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateContact(contact); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateContact(ctx, id, c.Contact); err != nil {
		return nil, err
	}
	return c, nil
}
