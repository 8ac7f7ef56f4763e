package app

import (
	"github.com/robfig/cron/v3"

	"github.com/securevista/securevista/config"
	"github.com/securevista/securevista/internal/repository"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// RepositoryProvider provides the collection repositories
type RepositoryProvider interface {
	Products() *repository.ProductRepository
	Messages() *repository.MessageRepository
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines the provider interfaces for the web layer.
type AppContext interface {
	ConfigProvider
	RepositoryProvider
	SchedulerProvider

	RequestID() string
	Release()
}
