package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"MarketPulse/internal/domain/repository"
	"MarketPulse/internal/handler/api"
	internalrepo "MarketPulse/internal/repository"
	"MarketPulse/internal/service/history"
	"MarketPulse/internal/service/marketdata"
	"MarketPulse/internal/service/providers"
	"MarketPulse/internal/service/scoring"
	"MarketPulse/internal/service/stream"
	"MarketPulse/internal/usecase"
	"MarketPulse/pkg/config"
	xhttp "MarketPulse/pkg/http"
	pkgkafka "MarketPulse/pkg/kafka"
	applogger "MarketPulse/pkg/logger"
	"MarketPulse/pkg/metrics"
	"MarketPulse/pkg/server"
)

// ProvideLogger creates the app logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideQuoteProviders builds the ordered provider list. Providers
// without an API key are skipped entirely; the chain handles an empty
// list by degrading to synthetic quotes.
func ProvideQuoteProviders(cfg *config.Config) []repository.QuoteProvider {
	timeout := cfg.Providers.RequestTimeout
	var list []repository.QuoteProvider
	if cfg.Providers.Polygon.APIKey != "" {
		list = append(list, providers.NewPolygon(cfg.Providers.Polygon.APIKey, cfg.Providers.Polygon.BaseURL, timeout))
	}
	if cfg.Providers.TwelveData.APIKey != "" {
		list = append(list, providers.NewTwelveData(cfg.Providers.TwelveData.APIKey, cfg.Providers.TwelveData.BaseURL, timeout))
	}
	if cfg.Providers.AlphaVantage.APIKey != "" {
		list = append(list, providers.NewAlphaVantage(cfg.Providers.AlphaVantage.APIKey, cfg.Providers.AlphaVantage.BaseURL, timeout))
	}
	return list
}

// ProvideChain creates the market data chain.
func ProvideChain(cfg *config.Config, quoteProviders []repository.QuoteProvider, log *applogger.Logger, m repository.Metrics) *marketdata.Chain {
	opts := []marketdata.Option{
		marketdata.WithQuoteTTL(cfg.Providers.QuoteCacheTTL),
		marketdata.WithFlowTTL(cfg.Providers.UnusualWhales.CacheTTL),
		marketdata.WithAttemptTimeout(cfg.Providers.RequestTimeout),
		marketdata.WithMaxParallel(cfg.Scanner.MaxParallel),
		marketdata.WithLogger(log),
		marketdata.WithMetrics(m),
	}
	if cfg.Providers.UnusualWhales.APIKey != "" {
		opts = append(opts, marketdata.WithFlowProvider(providers.NewUnusualWhales(
			cfg.Providers.UnusualWhales.APIKey,
			cfg.Providers.UnusualWhales.BaseURL,
			cfg.Providers.UnusualWhales.Limit,
			cfg.Providers.RequestTimeout,
		)))
	}
	if cfg.Providers.RateLimit.Capacity > 0 && cfg.Providers.RateLimit.RefillPerSec > 0 {
		opts = append(opts, marketdata.WithRateLimit(cfg.Providers.RateLimit.Capacity, cfg.Providers.RateLimit.RefillPerSec))
	}
	return marketdata.NewChain(quoteProviders, opts...)
}

// ProvideHistory creates the shared price history store.
func ProvideHistory(cfg *config.Config) *history.Store {
	return history.NewStore(cfg.History.Retention)
}

// ProvideModelStore selects the model state backend.
func ProvideModelStore(cfg *config.Config) repository.ModelStore {
	if cfg.Model.Store == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Model.Redis.Addr,
			Password: cfg.Model.Redis.Password,
			DB:       cfg.Model.Redis.DB,
		})
		return internalrepo.NewRedisModelStore(client, "")
	}
	return internalrepo.NewFileModelStore(cfg.Model.Path)
}

// ProvideModel creates the scoring model and restores persisted state
// when available. A fresh deployment starts from defaults.
func ProvideModel(cfg *config.Config, store repository.ModelStore, log *applogger.Logger) (*scoring.Model, error) {
	model := scoring.NewModel(cfg.Model.LearningRate, cfg.Model.Momentum)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	state, err := store.Load(ctx)
	if errors.Is(err, repository.ErrNoState) {
		log.Info("no saved model state, starting fresh")
		return model, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load model state: %w", err)
	}
	if err := model.Restore(state); err != nil {
		log.Warn("saved model state unusable, starting fresh", applogger.Error(err))
	}
	return model, nil
}

// ProvideGenerator creates the recommendation generator.
func ProvideGenerator(model *scoring.Model) *usecase.Generator {
	return usecase.NewGenerator(model)
}

// ProvideTradeMemory creates the bounded trade log.
func ProvideTradeMemory(cfg *config.Config, model *scoring.Model, store repository.ModelStore, log *applogger.Logger, m repository.Metrics) *usecase.TradeMemory {
	return usecase.NewTradeMemory(model,
		usecase.WithTradeCapacity(cfg.Trades.Capacity),
		usecase.WithModelStore(store),
		usecase.WithTradeLogger(log),
		usecase.WithTradeMetrics(m),
	)
}

// ProvidePublisher creates the Kafka recommendation publisher, or nil
// when Kafka is disabled.
func ProvidePublisher(cfg *config.Config) (repository.Publisher, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.BatchTimeout),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideScanner creates the scan pipeline.
func ProvideScanner(
	cfg *config.Config,
	chain *marketdata.Chain,
	hist *history.Store,
	gen *usecase.Generator,
	pub repository.Publisher,
	log *applogger.Logger,
	m repository.Metrics,
) *usecase.Scanner {
	opts := []usecase.ScannerOption{
		usecase.WithScannerLogger(log),
		usecase.WithScannerMetrics(m),
	}
	if pub != nil {
		opts = append(opts, usecase.WithPublisher(pub))
	}
	return usecase.NewScanner(cfg.Scanner.Symbols, chain, hist, gen, opts...)
}

// ProvideStreamPump creates the live tick pump, or nil when the stream
// is disabled.
func ProvideStreamPump(cfg *config.Config, hist *history.Store, log *applogger.Logger) *stream.Pump {
	if !cfg.Stream.Enabled {
		return nil
	}
	fh := stream.NewFinnhub(
		cfg.Stream.APIKey,
		cfg.Stream.WebSocketURL,
		cfg.Scanner.Symbols,
		cfg.Stream.ReconnectDelay,
		cfg.Stream.PingInterval,
		log,
	)
	return stream.NewPump(fh, hist, log)
}

// ProvideHandler bundles the API handlers.
func ProvideHandler(cfg *config.Config, scanner *usecase.Scanner, trades *usecase.TradeMemory, log *applogger.Logger) xhttp.Handler {
	market := api.NewMarketHandler(log, scanner, trades)

	timeout := cfg.Providers.RequestTimeout
	proxy := api.NewProxyHandler(log,
		providers.NewPolygon(cfg.Providers.Polygon.APIKey, cfg.Providers.Polygon.BaseURL, timeout),
		providers.NewTwelveData(cfg.Providers.TwelveData.APIKey, cfg.Providers.TwelveData.BaseURL, timeout),
		providers.NewAlphaVantage(cfg.Providers.AlphaVantage.APIKey, cfg.Providers.AlphaVantage.BaseURL, timeout),
	)
	return api.NewRouter(market, proxy)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	scanner *usecase.Scanner,
	trades *usecase.TradeMemory,
	pump *stream.Pump,
	pub repository.Publisher,
	model *scoring.Model,
	store repository.ModelStore,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, log, scanner, trades, pump, pub, model, store, handler)
}
