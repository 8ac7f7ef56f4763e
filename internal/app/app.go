package app

import (
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/securevista/securevista/config"
	"github.com/securevista/securevista/internal/blobstore"
	"github.com/securevista/securevista/internal/cache"
	"github.com/securevista/securevista/internal/domain"
	"github.com/securevista/securevista/internal/repository"
)

// Application wires the blob store, fallback cache, repositories, event bus
// and scheduler together.
type Application struct {
	appConfig *config.AppConfig
	store     blobstore.Store
	cache     cache.CollectionCache
	products  *repository.ProductRepository
	messages  *repository.MessageRepository
	bus       EventBus.Bus
	sched     *cron.Cron
	idNode    *snowflake.Node
}

var (
	_ ConfigProvider     = (*Application)(nil)
	_ RepositoryProvider = (*Application)(nil)
	_ SchedulerProvider  = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig             { return a.appConfig }
func (a *Application) Products() *repository.ProductRepository { return a.products }
func (a *Application) Messages() *repository.MessageRepository { return a.messages }
func (a *Application) Scheduler() *cron.Cron                 { return a.sched }
func (a *Application) Bus() EventBus.Bus                     { return a.bus }
func (a *Application) Store() blobstore.Store                { return a.store }
func (a *Application) Cache() cache.CollectionCache          { return a.cache }

// RequestID returns a process-unique id for request tracing.
func (a *Application) RequestID() string {
	return a.idNode.Generate().String()
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger(cfg)

	if err := os.MkdirAll(cfg.System.Workdir, 0755); err != nil {
		zap.S().Errorf("workdir init failed: %v", err)
	}

	a.idNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	// Object store: HTTP blob service when configured, otherwise the
	// in-memory store so development works without credentials.
	if cfg.Blob.Endpoint != "" {
		a.store = blobstore.NewHTTPStore(cfg.Blob.Endpoint, cfg.Blob.Token,
			time.Duration(cfg.Blob.Timeout)*time.Second)
		zap.S().Infof("blob store connected: %s", cfg.Blob.Endpoint)
	} else {
		a.store = blobstore.NewMemoryStore()
		zap.S().Warn("no blob endpoint configured, using in-memory store")
	}

	boltCache, err := cache.NewBoltCache(cfg.CachePath())
	if err != nil {
		zap.S().Warnf("fallback cache file unavailable, using memory cache: %v", err)
		a.cache = cache.NewMemoryCache()
	} else {
		a.cache = boltCache
	}

	a.bus = EventBus.New()
	a.initEventHandlers()

	a.products = repository.NewProductRepository(a.store, a.cache, domain.DefaultProducts, a.bus)
	a.messages = repository.NewMessageRepository(a.store, a.cache, a.bus)

	a.initJob()
}

func (a *Application) initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		filename := cfg.Logger.Filename
		if filename == "" {
			filename = filepath.Join(cfg.System.Workdir, "securevista.log")
		}
		lumberJackLogger := &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

func (a *Application) initEventHandlers() {
	_ = a.bus.Subscribe(repository.EventProductsReplaced, func(key string, count int) {
		metricSnapshotWrites.Inc()
		metricSnapshotSize.Set(float64(count))
		zap.L().Info("product snapshot written",
			zap.String("key", key), zap.Int("count", count))
	})
	_ = a.bus.Subscribe(repository.EventMessageCreated, func(id string) {
		metricMessagesCreated.Inc()
		zap.L().Info("contact message received", zap.String("id", id))
	})
	_ = a.bus.Subscribe(repository.EventMessageDeleted, func(id string) {
		metricMessagesDeleted.Inc()
		zap.L().Info("contact message deleted", zap.String("id", id))
	})
}

// Release releases application resources.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.cache != nil {
		_ = a.cache.Close()
	}
	_ = zap.L().Sync()
}
