package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig holds process-wide settings.
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig holds the HTTP boundary settings. The admin credential is a
// single username plus bcrypt hash; there is no user model.
type WebConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	Secret        string `yaml:"secret"`
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

// BlobConfig points at the object-store service. When the endpoint is empty
// the application runs on the in-memory store (development mode).
type BlobConfig struct {
	Endpoint string `yaml:"endpoint"`
	Token    string `yaml:"token"`
	Timeout  int    `yaml:"timeout"`
}

// StoreConfig tunes the persistence layer.
type StoreConfig struct {
	SnapshotKeep int    `yaml:"snapshot_keep"`
	WarmCron     string `yaml:"warm_cron"`
	PruneCron    string `yaml:"prune_cron"`
}

// LogConfig mirrors the zap/lumberjack setup.
type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System SysConfig   `yaml:"system"`
	Web    WebConfig   `yaml:"web"`
	Blob   BlobConfig  `yaml:"blob"`
	Store  StoreConfig `yaml:"store"`
	Logger LogConfig   `yaml:"logger"`
}

// DefaultAppConfig is the development baseline; the bundled admin credential
// is the bcrypt hash of "securevista" and must be overridden in production.
var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "SecureVista",
		Location: "Asia/Kolkata",
		Workdir:  "/var/securevista",
	},
	Web: WebConfig{
		Host:          "0.0.0.0",
		Port:          1816,
		Secret:        "9b6de5cc-securevista-0b01",
		AdminUsername: "admin",
		AdminPassword: "$2b$12$wpvUmx/W84biFvK85CnG7eFTYusNbXAdaiaIVOVI.n1BA2gpfP.oS",
		TokenTTLHours: 12,
	},
	Blob: BlobConfig{
		Timeout: 10,
	},
	Store: StoreConfig{
		SnapshotKeep: 20,
		WarmCron:     "@every 5m",
		PruneCron:    "@daily",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/securevista/securevista.log",
	},
}

func setEnvValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = cast.ToBool(evalue)
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

// LoadConfig reads the YAML config file and applies environment overrides.
// A missing file yields the built-in defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig

	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("SECUREVISTA_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("SECUREVISTA_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("SECUREVISTA_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("SECUREVISTA_WEB_PORT", &cfg.Web.Port)
	setEnvValue("SECUREVISTA_WEB_SECRET", &cfg.Web.Secret)
	setEnvValue("SECUREVISTA_WEB_ADMIN_USERNAME", &cfg.Web.AdminUsername)
	setEnvValue("SECUREVISTA_WEB_ADMIN_PASSWORD", &cfg.Web.AdminPassword)

	setEnvValue("SECUREVISTA_BLOB_ENDPOINT", &cfg.Blob.Endpoint)
	setEnvValue("SECUREVISTA_BLOB_TOKEN", &cfg.Blob.Token)
	setEnvIntValue("SECUREVISTA_BLOB_TIMEOUT", &cfg.Blob.Timeout)

	setEnvIntValue("SECUREVISTA_STORE_SNAPSHOT_KEEP", &cfg.Store.SnapshotKeep)

	return cfg
}

// CachePath returns the fallback-cache file location under the workdir.
func (c *AppConfig) CachePath() string {
	return filepath.Join(c.System.Workdir, "fallback-cache.db")
}
