// Package server wires the PantryKeeper process: it opens the configured
// document store, builds the services, and runs the gRPC gateway, the HTTP
// endpoint until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/config"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/docstore"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/identity"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/realtime"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/services"

	gs "github.com/dmitrijs2005/pantrykeeper/internal/server/grpc"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config *config.Config
	logger logging.Logger
	store  docstore.Store
	grpc   runner
	http   runner
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	mode, err := services.ParseRemovalMode(c.ListRemovalMode)
	if err != nil {
		return nil, err
	}

	store, err := openStore(context.Background(), c)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	rm := repomanager.NewDocstoreRepositoryManager(store)
	hub := realtime.NewHub(logger)

	ps := services.NewPantryService(rm, hub, logger)
	ls := services.NewShoppingListService(rm, hub, logger, mode)

	hook := identity.NewHook(rm.Profiles(), hub, logger)

	handler := httpapi.NewHandler(hook, hub, logger)
	router := httpapi.NewRouter(handler, c.WebhookAPIKey, []byte(c.SecretKey))

	logger.Info(context.Background(), "App initialized", "store_backend", c.StoreBackend, "list_removal_mode", string(ls.Mode()))

	return &App{
		config: c,
		logger: logger,
		store:  store,
		grpc:   gs.NewGRPCServer(c.EndpointAddrGRPC, logger, ps, ls, c.SecretKey),
		http:   httpapi.NewHTTPServer(c.EndpointAddrHTTP, router, logger),
	}, nil
}

// openStore connects the configured backend. Connecting is bounded by
// StoreConnectTimeout.
func openStore(ctx context.Context, c *config.Config) (docstore.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, c.StoreConnectTimeout)
	defer cancel()

	switch c.StoreBackend {
	case config.BackendMongo:
		client, err := docstore.ConnectMongo(ctx, c.MongoURI)
		if err != nil {
			return nil, err
		}
		return docstore.NewMongoStore(client.Database(c.MongoDatabase)), nil

	case config.BackendPostgres:
		db, err := docstore.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if err := docstore.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return docstore.NewPostgresStore(db), nil

	case config.BackendMemory:
		return docstore.NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) start(ctx context.Context, cancelFunc context.CancelFunc, name string, r runner) {
	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, "component failed", "component", name, "error", err)
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or a component fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "grpc", app.grpc)
	}()
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "http", app.http)
	}()

	wg.Wait()

	if err := app.store.Close(context.Background()); err != nil {
		app.logger.Error(context.Background(), "store close failed", "error", err)
	}

	app.logger.Info(context.Background(), "App stopped")
}
