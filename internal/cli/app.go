package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-club-seat-reservation/internal/api/handler"
	"github.com/sanosuguru/go-club-seat-reservation/internal/api/router"
	"github.com/sanosuguru/go-club-seat-reservation/internal/application"
	"github.com/sanosuguru/go-club-seat-reservation/internal/config"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/pricing"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/tariff"
	"github.com/sanosuguru/go-club-seat-reservation/internal/infrastructure/postgres"
	"github.com/sanosuguru/go-club-seat-reservation/internal/infrastructure/rabbitmq"
	redisinfra "github.com/sanosuguru/go-club-seat-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/metrics"
)

// app は serve で起動するサービス一式
type app struct {
	store     *store
	redis     *goredis.Client
	publisher *rabbitmq.Publisher
	metrics   *metrics.Metrics

	seats        *application.SeatService
	reservations *application.ReservationService
	clients      *application.ClientService
	healthChecks []handler.HealthCheck
}

type appOptions struct {
	autoMigrate bool
}

// buildApp は設定に従って依存を組み立て、座席スナップショットを読み込む
// 失敗した場合は途中まで作った接続を閉じる
func buildApp(ctx context.Context, cfg *config.Config, m *metrics.Metrics, opts appOptions) (_ *app, err error) {
	a := &app{metrics: m}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	prices, err := newPricingRegistry(cfg.Pricing)
	if err != nil {
		return nil, err
	}
	policy, err := reservation.ParseConflictPolicy(cfg.Booking.AvailabilityPolicy)
	if err != nil {
		return nil, err
	}

	if a.store, err = openStore(cfg); err != nil {
		return nil, err
	}
	if a.store.db != nil {
		db := a.store.db
		if opts.autoMigrate {
			if err := postgres.RunMigrations(db.DB, cfg.Store.MigrationsPath); err != nil {
				return nil, err
			}
		}
		a.healthChecks = append(a.healthChecks, handler.HealthCheck{
			Name:  "postgres",
			Check: func(ctx context.Context) error { return postgres.Ping(ctx, db) },
		})
	}

	// nil ポインタをインターフェースに入れないよう、未使用時は nil のままにする
	var (
		lockManager redisinfra.LockManagerInterface
		seatCache   application.SeatCache
	)
	if cfg.Redis.Enabled {
		client, err := redisinfra.NewClient(redisinfra.ConfigFrom(&cfg.Redis))
		if err != nil {
			return nil, err
		}
		a.redis = client
		lockManager = redisinfra.NewLockManager(client)
		seatCache = redisinfra.NewSeatCache(client, cfg.Redis.CacheTTL)
		a.healthChecks = append(a.healthChecks, handler.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisinfra.Ping(ctx, client) },
		})
	}

	a.seats = application.NewSeatService(a.store.txm, a.store.seats, seatCache, m)
	a.clients = application.NewClientService(a.store.clients)

	resOpts := []application.ReservationOption{
		application.WithConflictPolicy(policy),
		application.WithMetrics(m),
		application.WithLockTTL(cfg.Redis.LockTTL),
	}
	if cfg.RabbitMQ.Enabled {
		a.publisher = rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		resOpts = append(resOpts, application.WithPublisher(a.publisher))
	}
	if cfg.Booking.SyncSeatOnTransition {
		resOpts = append(resOpts, application.WithTransitionHooks(application.NewSeatOccupancySync(a.seats)))
	}
	a.reservations = application.NewReservationService(
		a.store.txm, a.store.reservations, a.seats, prices, lockManager, resOpts...,
	)

	created, err := a.seats.InitializeDefaultSeats(ctx, cfg.Booking.DefaultSeatCount, cfg.Booking.DefaultHardwareSpec)
	if err != nil {
		return nil, err
	}
	if err := a.seats.Load(ctx); err != nil {
		return nil, err
	}

	logger.Info("サービスを構成",
		zap.String("store", cfg.Store.Driver),
		zap.String("policy", string(policy)),
		zap.String("pricing", prices.Default()),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Bool("rabbitmq", cfg.RabbitMQ.Enabled),
		zap.Bool("seat_sync", cfg.Booking.SyncSeatOnTransition),
		zap.Int("seats_created", created),
	)
	return a, nil
}

// routerDeps は HTTP ルーティング用の依存を返す
func (a *app) routerDeps() router.Deps {
	return router.Deps{
		Seats:        a.seats,
		Reservations: a.reservations,
		Clients:      a.clients,
		HealthChecks: a.healthChecks,
		Metrics:      a.metrics,
	}
}

// Close は外部接続を閉じる
func (a *app) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	return errors.Join(errs...)
}

// newPricingRegistry は per_minute と tariff の2つの料金計算方法を登録する
// tariff は設定された1つの料金プランを全座席に適用する
func newPricingRegistry(cfg config.PricingConfig) (*pricing.Registry, error) {
	period, err := tariff.ParsePeriod(cfg.TariffPeriod)
	if err != nil {
		return nil, err
	}
	tr, err := tariff.NewTariff(1, cfg.TariffName, cfg.TariffBaseRate, period)
	if err != nil {
		return nil, fmt.Errorf("料金プランの設定が不正です: %w", err)
	}
	return pricing.NewRegistry(cfg.Default,
		pricing.NewPerMinute(cfg.RatePerMinute),
		pricing.NewTariffBased(pricing.StaticTariffResolver{Tariff: tr}, time.Now),
	)
}
