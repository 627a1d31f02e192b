package config

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	RedisAddr     string
	RedisPassword string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	UploadsBucket    string
	VideosBucket     string
	ThumbnailsBucket string

	WorkerConcurrency int
	JobTimeout        time.Duration
	// JobMaxAttempts is the total number of deliveries a job may get,
	// first execution included.
	JobMaxAttempts    int
	JobRetryBaseDelay time.Duration

	TempDir     string
	FFmpegPath  string
	FFprobePath string
}

// Buckets lists every bucket the service writes to, for startup initialisation.
func (s *Settings) Buckets() []string {
	return []string{s.UploadsBucket, s.VideosBucket, s.ThumbnailsBucket}
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	if !viper.IsSet("MARIADB_DSN") {
		return nil, fmt.Errorf("MARIADB_DSN is required")
	}
	if !viper.IsSet("MARIADB_MAX_OPEN_CONN") {
		return nil, fmt.Errorf("MARIADB_MAX_OPEN_CONN is required")
	}
	if !viper.IsSet("MARIADB_MAX_IDLE_CONNS") {
		return nil, fmt.Errorf("MARIADB_MAX_IDLE_CONNS is required")
	}
	if !viper.IsSet("MARIADB_CONN_MAX_LIFETIME") {
		return nil, fmt.Errorf("MARIADB_CONN_MAX_LIFETIME is required")
	}
	if !viper.IsSet("SERVER_PORT") {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}
	if !viper.IsSet("MINIO_ENDPOINT") {
		return nil, fmt.Errorf("MINIO_ENDPOINT is required")
	}
	if !viper.IsSet("MINIO_ACCESS_KEY") {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY is required")
	}
	if !viper.IsSet("MINIO_SECRET_KEY") {
		return nil, fmt.Errorf("MINIO_SECRET_KEY is required")
	}

	viper.SetDefault("UPLOADS_BUCKET", "uploads")
	viper.SetDefault("VIDEOS_BUCKET", "videos")
	viper.SetDefault("THUMBNAILS_BUCKET", "thumbnails")
	viper.SetDefault("WORKER_CONCURRENCY", 4)
	viper.SetDefault("JOB_TIMEOUT", 300)
	viper.SetDefault("JOB_MAX_ATTEMPTS", 3)
	viper.SetDefault("JOB_RETRY_BASE_DELAY", 2)
	viper.SetDefault("TEMP_DIR", filepath.Join("/tmp", "videos-ms"))
	viper.SetDefault("FFMPEG_PATH", "ffmpeg")
	viper.SetDefault("FFPROBE_PATH", "ffprobe")

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),

		UploadsBucket:    viper.GetString("UPLOADS_BUCKET"),
		VideosBucket:     viper.GetString("VIDEOS_BUCKET"),
		ThumbnailsBucket: viper.GetString("THUMBNAILS_BUCKET"),

		WorkerConcurrency: viper.GetInt("WORKER_CONCURRENCY"),
		JobTimeout:        time.Duration(viper.GetInt("JOB_TIMEOUT")) * time.Second,
		JobMaxAttempts:    viper.GetInt("JOB_MAX_ATTEMPTS"),
		JobRetryBaseDelay: time.Duration(viper.GetInt("JOB_RETRY_BASE_DELAY")) * time.Second,

		TempDir:     viper.GetString("TEMP_DIR"),
		FFmpegPath:  viper.GetString("FFMPEG_PATH"),
		FFprobePath: viper.GetString("FFPROBE_PATH"),
	}, nil
}
