package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/shopspring/decimal"
	"github.com/stylehub/storefront/config"
	"github.com/stylehub/storefront/internal/adapter/httphandler"
	"github.com/stylehub/storefront/internal/adapter/kafka"
	"github.com/stylehub/storefront/internal/adapter/storage"
	"github.com/stylehub/storefront/internal/core/service"
	"github.com/stylehub/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type adapters struct {
	sqldb             storage.SQLDB
	cartEventsSerde   schema.Serde
	cartEvents        kafka.CartEventsProducer
	trendingProcessor kafka.TrendingProcessor
	trendingView      kafka.TrendingView
}

type services struct {
	catalog   *service.CatalogService
	sessions  *service.CartSessions
	dashboard service.DashboardService
	checkout  service.Checkout
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	adapters   adapters
	services   services
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	cartEventsSS := app.cfg.Broker.Topics.CartEvents + "-value"
	cartEventsSerde, err := schema.NewSerdeCartEventV1(
		app.ctx,
		schema.SubjectOpt(cartEventsSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.adapters.cartEventsSerde = cartEventsSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	seedBrokers := app.cfg.Broker.SeedBrokers
	cartEventsTopic := app.cfg.Broker.Topics.CartEvents
	trendingGroup := app.cfg.Broker.Consumers.TrendingGroup

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.adapters.sqldb = sqldb

	cartEvents, err := kafka.NewCartEventsProducer(
		kafka.ProducerClientOpt(app.ctx, seedBrokers, cartEventsTopic),
		kafka.ProducerEncoderOpt(app.adapters.cartEventsSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.adapters.cartEvents = cartEvents

	trendingProcessor, err := kafka.NewTrendingProcessor(
		seedBrokers, cartEventsTopic, trendingGroup,
		app.adapters.cartEventsSerde,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.adapters.trendingProcessor = trendingProcessor

	trendingView, err := kafka.NewTrendingView(seedBrokers, trendingGroup)
	if err != nil {
		app.fallDown(op, err)
	}
	app.adapters.trendingView = trendingView
}

func (app *App) initCoreServices() {
	const op = "App.initCoreServices"

	pricing, err := app.pricing()
	if err != nil {
		app.fallDown(op, err)
	}

	products := storage.NewProductsRepository(app.adapters.sqldb)
	cart := storage.NewCartRepository(app.adapters.sqldb)
	wishlist := storage.NewWishlistRepository(app.adapters.sqldb)
	orders := storage.NewOrdersRepository(app.adapters.sqldb)
	reviews := storage.NewReviewsRepository(app.adapters.sqldb)

	app.services.catalog = service.NewCatalogService(products, reviews)
	app.services.sessions = service.NewCartSessions(
		products, cart, wishlist, pricing, app.adapters.cartEvents,
	)
	app.services.dashboard = service.NewDashboardService(
		orders, app.adapters.trendingView,
	)
	app.services.checkout = service.Checkout{}
}

// pricing builds the totals calculator from config, falling back to
// the defaults for unset values.
func (app *App) pricing() (service.Pricing, error) {
	p := app.cfg.Pricing
	if p.TaxRate == "" {
		p.TaxRate = service.DefaultTaxRate
	}
	if p.FreeShippingThreshold == "" {
		p.FreeShippingThreshold = service.DefaultFreeShippingThreshold
	}
	if p.FlatShippingFee == "" {
		p.FlatShippingFee = service.DefaultFlatShippingFee
	}

	taxRate, err := decimal.NewFromString(p.TaxRate)
	if err != nil {
		return service.Pricing{}, fmt.Errorf("tax_rate: %w", err)
	}
	threshold, err := decimal.NewFromString(p.FreeShippingThreshold)
	if err != nil {
		return service.Pricing{}, fmt.Errorf("free_shipping_threshold: %w", err)
	}
	fee, err := decimal.NewFromString(p.FlatShippingFee)
	if err != nil {
		return service.Pricing{}, fmt.Errorf("flat_shipping_fee: %w", err)
	}

	return service.NewPricing(taxRate, threshold, fee), nil
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.services.catalog)
	httphandler.RegisterCart(mux, app.services.sessions)
	httphandler.RegisterWishlist(mux, app.services.sessions)
	httphandler.RegisterAccount(
		mux, app.services.sessions, app.services.dashboard, app.services.checkout,
	)

	handler := httphandler.Identity(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(addr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.adapters.trendingProcessor.Run(app.ctx)
	go app.adapters.trendingView.Run(app.ctx)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.adapters.trendingProcessor.Close()
	app.adapters.cartEvents.Close()
	app.adapters.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
