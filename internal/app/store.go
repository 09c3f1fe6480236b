package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/outbound-tracker/internal/adapter/filestore"
	"github.com/heartmarshall/outbound-tracker/internal/adapter/postgres"
	actionrepo "github.com/heartmarshall/outbound-tracker/internal/adapter/postgres/action"
	"github.com/heartmarshall/outbound-tracker/internal/config"
	"github.com/heartmarshall/outbound-tracker/internal/domain"
	"github.com/heartmarshall/outbound-tracker/internal/service/action"
	"github.com/heartmarshall/outbound-tracker/internal/service/analytics"
)

// ActionStore is the persistence contract both drivers implement.
type ActionStore interface {
	Create(ctx context.Context, a *domain.Action) (*domain.Action, error)
	GetByID(ctx context.Context, id string) (*domain.Action, error)
	List(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, error)
	Update(ctx context.Context, id string, patch domain.ActionPatch) (*domain.Action, error)
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Store is the action store selected by configuration together with its
// transaction runner and health probe.
type Store struct {
	Driver  string
	Actions ActionStore
	Tx      txRunner
	Pinger  pinger

	close func()
}

// Close releases the underlying connections. It is safe to call more than once.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
		s.close = nil
	}
}

// OpenStore connects the configured driver. For postgres it runs migrations
// first when database.auto_migrate is set.
func OpenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Database.DSN, log); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}

		pool, err := postgres.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:  config.StoreDriverPostgres,
			Actions: actionrepo.New(pool),
			Tx:      postgres.NewTxManager(pool),
			Pinger:  pool,
			close:   pool.Close,
		}, nil

	case config.StoreDriverFile:
		file, err := filestore.New(cfg.Store.FilePath)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return &Store{
			Driver:  config.StoreDriverFile,
			Actions: file,
			Tx:      file,
			Pinger:  file,
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// Services are the use cases wired on top of a Store.
type Services struct {
	Actions   *action.Service
	Analytics *analytics.Service
}

// NewServices builds the action and analytics services over store.
func NewServices(log *slog.Logger, store *Store) Services {
	return Services{
		Actions:   action.NewService(log, store.Actions, store.Tx),
		Analytics: analytics.NewService(log, store.Actions, nil),
	}
}
