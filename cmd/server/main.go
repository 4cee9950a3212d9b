package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zoobzio/clockz"

	merchantApplication "github.com/rcarvalho-pb/fiadopay-go/internal/application/merchant"
	paymentApplication "github.com/rcarvalho-pb/fiadopay-go/internal/application/payment"
	"github.com/rcarvalho-pb/fiadopay-go/internal/application/webhook"
	"github.com/rcarvalho-pb/fiadopay-go/internal/application/worker"
	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/event"
	domainMerchant "github.com/rcarvalho-pb/fiadopay-go/internal/domain/merchant"
	domainPayment "github.com/rcarvalho-pb/fiadopay-go/internal/domain/payment"
	domainWebhook "github.com/rcarvalho-pb/fiadopay-go/internal/domain/webhook"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infra/config"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infra/logging"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infra/metrics"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infrastructure/eventbus"
	httpapi "github.com/rcarvalho-pb/fiadopay-go/internal/infrastructure/http"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infrastructure/outbox"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infrastructure/persistence/inmemory"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infrastructure/persistence/sqlite"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewSlogLogger()
	counters := &metrics.Counters{}
	clock := clockz.RealClock

	var (
		merchantRepo domainMerchant.Repository
		paymentRepo  domainPayment.Repository
		deliveryRepo domainWebhook.Repository
		outboxRepo   outbox.Repository
	)

	switch cfg.Storage {
	case "memory":
		merchantRepo = inmemory.NewMerchantRepository()
		paymentRepo = inmemory.NewPaymentRepository()
		deliveryRepo = inmemory.NewDeliveryRepository()
		outboxRepo = outbox.NewInMemoryRepository()
	default:
		db, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := sqlite.RunMigrations(db); err != nil {
			log.Fatal(err)
		}
		merchantRepo = sqlite.NewMerchantRepository(db)
		paymentRepo = sqlite.NewPaymentRepository(db)
		deliveryRepo = sqlite.NewDeliveryRepository(db)
		outboxRepo = outbox.NewSQLiteRepository(db)
	}

	bus := eventbus.NewInMemoryBus()
	recorder := &outbox.Recorder{Repo: outboxRepo}

	dispatcher := &outbox.Dispatcher{
		Repo:         outboxRepo,
		EventBus:     bus,
		PollInterval: cfg.OutboxPollInterval.Std(),
		BatchSize:    cfg.OutboxBatchSize,
	}

	settlementPool := worker.NewPool("settlement", cfg.SettlementWorkers, cfg.SettlementQueue, logger, counters)
	webhookPool := worker.NewPool("webhook", cfg.WebhookWorkers, cfg.WebhookQueue, logger, counters)

	settlement := &worker.SettlementProcessor{
		Payments:    paymentRepo,
		Recorder:    recorder,
		Clock:       clock,
		Delay:       cfg.ProcessingDelay.Std(),
		FailureRate: cfg.FailureRate,
		Logger:      logger,
		Metrics:     counters,
	}

	deliveryService := &webhook.DeliveryService{
		Deliveries:  deliveryRepo,
		Sender:      &webhook.HTTPSender{Client: &http.Client{Timeout: 10 * time.Second}},
		Pool:        webhookPool,
		Clock:       clock,
		MaxAttempts: cfg.MaxDeliveryAttempts,
		BackoffBase: cfg.BackoffBase.Std(),
		Logger:      logger,
		Metrics:     counters,
	}

	trigger := &webhook.Trigger{
		Payments:  paymentRepo,
		Merchants: merchantRepo,
		Factory:   &webhook.EventFactory{Clock: clock},
		Signer:    webhook.NewSigner(cfg.WebhookSecret),
		Delivery:  deliveryService,
		Logger:    logger,
	}

	bus.Subscribe(event.PaymentSettled, trigger.Handle)

	threshold, err := decimal.NewFromString(cfg.WindowThreshold)
	if err != nil {
		log.Fatal(err)
	}

	paymentService := &paymentApplication.Service{
		Payments: paymentRepo,
		Strategies: paymentApplication.NewRegistry(
			&paymentApplication.CardStrategy{Clock: clock},
			&paymentApplication.PixStrategy{Clock: clock},
			&paymentApplication.BoletoStrategy{Clock: clock},
		),
		Window: &paymentApplication.TransactionWindow{
			Threshold:  threshold,
			CutoffHour: cfg.WindowCutoffHour,
		},
		Settler: settlement,
		Pool:    settlementPool,
		Logger:  logger,
		Metrics: counters,
	}

	merchantService := &merchantApplication.Service{
		Merchants: merchantRepo,
		Clock:     clock,
		Logger:    logger,
	}

	router := httpapi.NewRouter(
		&httpapi.MerchantHandler{Service: merchantService},
		&httpapi.PaymentHandler{Service: paymentService},
		httpapi.BasicAuth(merchantService),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go dispatcher.Run(ctx)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server running", map[string]any{"addr": cfg.HTTPAddr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	settlementPool.Close()
	webhookPool.Close()
}
