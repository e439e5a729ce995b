package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/julija05/kidseducation-guard/internal/domain/moderation"
	"github.com/julija05/kidseducation-guard/internal/domain/repository"
	"github.com/julija05/kidseducation-guard/internal/domain/service"
	"github.com/julija05/kidseducation-guard/internal/infrastructure/alert"
	"github.com/julija05/kidseducation-guard/internal/infrastructure/cache"
	"github.com/julija05/kidseducation-guard/internal/infrastructure/database"
	"github.com/julija05/kidseducation-guard/internal/infrastructure/email"
	"github.com/julija05/kidseducation-guard/internal/infrastructure/memstore"
	infraRepo "github.com/julija05/kidseducation-guard/internal/infrastructure/repository"
	"github.com/julija05/kidseducation-guard/internal/infrastructure/worker"
	"github.com/julija05/kidseducation-guard/pkg/config"
	"github.com/julija05/kidseducation-guard/pkg/jwt"
)

// catalogCacheTTL はカタログの静的な参照をキャッシュする期間です
const catalogCacheTTL = 10 * time.Minute

// Container はアプリケーションの依存関係を保持するDIコンテナです
type Container struct {
	// Infrastructure
	PgClient    *database.PostgresClient
	RedisClient *cache.RedisClient
	TxManager   *database.TxManager

	// Services
	JWTService *jwt.JWTService
	Moderator  *moderation.Moderator
	Alerts     *alert.Dispatcher

	// Guard stores
	SessionRepo    repository.SessionRepository
	SessionRevoker repository.SessionRevoker
	RateLimitStore repository.RateLimitStore

	// Repositories
	DemoGrantRepo repository.DemoGrantRepository
	Catalog       repository.CatalogReader

	// Guard UseCases
	Guard *GuardUseCases

	// memory バックエンドで定期掃除が必要なストア
	pruners []worker.Pruner

	config *config.Config
}

// Options はContainer作成時のオプションを定義します
type Options struct {
	PostgresPool *pgxpool.Pool
	RedisClient  *redis.Client
	Notifiers    []service.AlertNotifier
}

// NewContainer は新しいContainerを作成します
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(ctx, cfg, Options{})
}

// NewContainerWithOptions はオプションを指定してContainerを作成します
func NewContainerWithOptions(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{
		config:    cfg,
		Moderator: moderation.NewDefaultModerator(),
	}

	// PostgreSQL
	if opts.PostgresPool != nil {
		c.TxManager = database.NewTxManager(opts.PostgresPool)
	} else {
		slog.Info("connecting to PostgreSQL...")
		pgClient, err := database.NewPostgresClient(ctx, cfg.Database.URL, database.DefaultDBConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		c.PgClient = pgClient
		c.TxManager = database.NewTxManager(pgClient.Pool())
		slog.Info("connected to PostgreSQL")
	}

	// Redis（memory バックエンドでは使用しない）
	var redisClient *redis.Client
	switch {
	case opts.RedisClient != nil:
		redisClient = opts.RedisClient
	case cfg.Store.Backend == config.StoreBackendRedis:
		slog.Info("connecting to Redis...")
		redisConfig := cache.DefaultConfig()
		redisConfig.URL = cfg.Redis.URL
		client, err := cache.NewRedisClient(redisConfig)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.RedisClient = client
		redisClient = client.Client()
		slog.Info("connected to Redis")
	}

	// Guard stores
	if redisClient != nil {
		c.SessionRepo = cache.NewSessionStore(redisClient)
		c.SessionRevoker = cache.NewSessionRevocationList(redisClient)
		c.RateLimitStore = cache.NewRateLimitStore(redisClient)
	} else {
		sessions := memstore.NewSessionStore()
		revoked := memstore.NewRevocationList()
		c.SessionRepo = sessions
		c.SessionRevoker = revoked
		c.RateLimitStore = memstore.NewRateLimitStore()
		c.pruners = []worker.Pruner{sessions, revoked}
	}
	slog.Info("guard store initialized", "backend", string(cfg.Store.Backend))

	// JWT Service
	c.JWTService = jwt.NewJWTService(jwt.Config{
		SecretKey:         cfg.JWT.SecretKey,
		Issuer:            cfg.JWT.Issuer,
		Audience:          cfg.JWT.Audience,
		AccessTokenExpiry: cfg.JWT.AccessTokenExpiry,
	})

	// Repositories
	c.DemoGrantRepo = infraRepo.NewDemoGrantRepository(c.TxManager)
	var catalog repository.CatalogReader = infraRepo.NewCatalogRepository(c.TxManager)
	if redisClient != nil {
		catalog = cache.NewCachedCatalogReader(catalog, cache.NewCache(redisClient, "catalog", catalogCacheTTL))
	}
	c.Catalog = catalog

	// Alerts
	notifiers := opts.Notifiers
	if notifiers == nil {
		notifiers = c.defaultNotifiers(redisClient)
	}
	c.Alerts = alert.NewDispatcher(cfg.Alert.BufferSize, notifiers...)

	return c, nil
}

// defaultNotifiers は設定に応じたアラート通知先を組み立てます
func (c *Container) defaultNotifiers(redisClient *redis.Client) []service.AlertNotifier {
	cfg := c.config
	var notifiers []service.AlertNotifier

	if redisClient != nil && cfg.Alert.RedisChannel != "" {
		notifiers = append(notifiers, alert.NewRedisNotifier(redisClient, cfg.Alert.RedisChannel))
	}
	if len(cfg.Alert.Recipients) > 0 {
		smtpConfig := email.DefaultConfig()
		smtpConfig.Host = cfg.Alert.SMTPHost
		smtpConfig.Port = cfg.Alert.SMTPPort
		smtpConfig.Username = cfg.Alert.SMTPUsername
		smtpConfig.Password = cfg.Alert.SMTPPassword
		smtpConfig.From = cfg.Alert.SMTPFrom
		notifiers = append(notifiers, email.NewNotifier(email.NewSMTPClient(smtpConfig), cfg.Alert.Recipients, cfg.App.URL))
	}
	if len(notifiers) == 0 {
		slog.Warn("no alert notifiers configured; security alerts will only be logged")
	}
	return notifiers
}

// InitGuardUseCases はガード関連のUseCaseを初期化します
func (c *Container) InitGuardUseCases() {
	c.Guard = NewGuardUseCases(c, c.config)
}

// Close はリソースをクリーンアップします
func (c *Container) Close() error {
	var errs []error

	if c.Alerts != nil {
		c.Alerts.Shutdown()
	}

	if c.PgClient != nil {
		c.PgClient.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}
