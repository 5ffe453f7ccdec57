package cli

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-club-seat-reservation/internal/config"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/client"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/seat"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-club-seat-reservation/internal/infrastructure/memory"
	"github.com/sanosuguru/go-club-seat-reservation/internal/infrastructure/postgres"
)

// store は設定された永続化先のリポジトリ一式
type store struct {
	// db は postgres の場合のみ設定される
	db           *sqlx.DB
	txm          transaction.Manager
	seats        seat.Repository
	reservations reservation.Repository
	clients      client.Repository
}

func openStore(cfg *config.Config) (*store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		m := memory.NewStore()
		return &store{
			txm:          m,
			seats:        memory.NewSeatRepository(m),
			reservations: memory.NewReservationRepository(m),
			clients:      memory.NewClientRepository(m),
		}, nil
	case config.StoreDriverPostgres:
		db, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			return nil, err
		}
		return &store{
			db:           db,
			txm:          postgres.NewTxManager(db),
			seats:        postgres.NewSeatRepository(db),
			reservations: postgres.NewReservationRepository(db),
			clients:      postgres.NewClientRepository(db),
		}, nil
	default:
		return nil, fmt.Errorf("不明なストア: %q", cfg.Store.Driver)
	}
}

func (s *store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// openPostgres はマイグレーション用に PostgreSQL へ接続する
func openPostgres(cfg *config.Config) (*sqlx.DB, error) {
	if cfg.Store.Driver != config.StoreDriverPostgres {
		return nil, fmt.Errorf("マイグレーションは postgres ストアでのみ実行できます（STORE_DRIVER=%s）", cfg.Store.Driver)
	}
	return postgres.NewConnection(&cfg.Database)
}
