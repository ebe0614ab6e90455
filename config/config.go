package config

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"voice-memos/constant"
)

type Config struct {
	App     App           `yaml:"app"`
	Server  Server        `yaml:"server"`
	Storage Storage       `yaml:"storage"`
	Uploads Uploads       `yaml:"uploads"`
	DB      *gorm.DB      `yaml:"-"`
	Blobs   *minio.Client `yaml:"-"`
}

type App struct {
	Environment string `yaml:"environment"`
}

type Server struct {
	HttpPort string `yaml:"http_port"`
}

type Storage struct {
	Backend     constant.StorageBackend `yaml:"backend"`
	PostgresDSN string                  `yaml:"postgres_dsn"`
	SqlitePath  string                  `yaml:"sqlite_path"`
}

type Uploads struct {
	Backend constant.BlobBackend `yaml:"backend"`
	Dir     string               `yaml:"dir"`
	Bucket  string               `yaml:"bucket"`
}

func Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	err := viper.ReadInConfig()
	if err != nil {
		// Defaults (memory store, disk uploads) are enough to run without
		// a config file.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		App: App{
			Environment: viper.GetString("app.environment"),
		},
		Server: Server{
			HttpPort: viper.GetString("server.port"),
		},
		Storage: Storage{
			Backend:     constant.StorageBackend(viper.GetString("storage.backend")),
			PostgresDSN: viper.GetString("storage.postgres_dsn"),
			SqlitePath:  viper.GetString("storage.sqlite_path"),
		},
		Uploads: Uploads{
			Backend: constant.BlobBackend(viper.GetString("uploads.backend")),
			Dir:     viper.GetString("uploads.dir"),
			Bucket:  viper.GetString("uploads.bucket"),
		},
	}

	if err := openDB(cfg); err != nil {
		return nil, err
	}

	if cfg.Uploads.Backend == constant.BlobBackendMinio {
		minioClient, err := minio.New(viper.GetString("minio.url"), &minio.Options{
			Creds:  credentials.NewStaticV4(viper.GetString("minio.access_id"), viper.GetString("minio.secret_access_key"), ""),
			Secure: viper.GetBool("minio.secure"),
		})
		if err != nil {
			return nil, err
		}
		cfg.Blobs = minioClient
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.environment", constant.EnvironmentDevelop.String())
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("storage.backend", constant.StorageBackendMemory.String())
	viper.SetDefault("storage.sqlite_path", "./voice_memos.db")
	viper.SetDefault("uploads.backend", constant.BlobBackendDisk.String())
	viper.SetDefault("uploads.dir", "./uploads")
	viper.SetDefault("uploads.bucket", "voice-memos")
}

func openDB(cfg *Config) error {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch cfg.Storage.Backend {
	case constant.StorageBackendMemory:
		return nil
	case constant.StorageBackendSqlite:
		db, err := gorm.Open(sqlite.Open(cfg.Storage.SqlitePath), gormCfg)
		if err != nil {
			return err
		}
		cfg.DB = db
		return nil
	case constant.StorageBackendPostgres:
		db, err := gorm.Open(postgres.Open(cfg.Storage.PostgresDSN), gormCfg)
		if err != nil {
			return err
		}
		cfg.DB = db
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
