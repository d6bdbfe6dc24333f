package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultVoteCap        = 2
	defaultMaxTitleLength = 120
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	RedisAddr     string
	RedisPassword string

	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioUseSSL     bool
	UploadsBucket   string
	ProcessedBucket string

	JWTPublicKey string

	VoteCap        int
	MaxTitleLength int
	UploadURLTTL   time.Duration
	DownloadURLTTL time.Duration
	RankingTTL     time.Duration
	JobRetention   time.Duration
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

	for _, key := range []string{
		"MARIADB_DSN",
		"MARIADB_MAX_OPEN_CONN",
		"MARIADB_MAX_IDLE_CONNS",
		"MARIADB_CONN_MAX_LIFETIME",
		"SERVER_PORT",
	} {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	viper.SetDefault("VOTE_CAP", defaultVoteCap)
	viper.SetDefault("MAX_TITLE_LENGTH", defaultMaxTitleLength)
	viper.SetDefault("UPLOADS_BUCKET", "uploads")
	viper.SetDefault("PROCESSED_BUCKET", "processed")
	viper.SetDefault("UPLOAD_URL_TTL", 900)
	viper.SetDefault("DOWNLOAD_URL_TTL", 3600)
	viper.SetDefault("RANKING_TTL", 60)
	viper.SetDefault("JOB_RETENTION_DAYS", 30)

	cap := viper.GetInt("VOTE_CAP")
	if cap <= 0 {
		return nil, fmt.Errorf("VOTE_CAP must be a positive integer, got %d", cap)
	}

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),
		RedisAddr:       viper.GetString("REDIS_ADDR"),
		RedisPassword:   viper.GetString("REDIS_PASSWORD"),
		MinioEndpoint:   viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey:  viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey:  viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:     viper.GetBool("MINIO_USE_SSL"),
		UploadsBucket:   viper.GetString("UPLOADS_BUCKET"),
		ProcessedBucket: viper.GetString("PROCESSED_BUCKET"),
		JWTPublicKey:    viper.GetString("JWT_PUBLIC_KEY"),
		VoteCap:         cap,
		MaxTitleLength:  viper.GetInt("MAX_TITLE_LENGTH"),
		UploadURLTTL:    time.Duration(viper.GetInt("UPLOAD_URL_TTL")) * time.Second,
		DownloadURLTTL:  time.Duration(viper.GetInt("DOWNLOAD_URL_TTL")) * time.Second,
		RankingTTL:      time.Duration(viper.GetInt("RANKING_TTL")) * time.Second,
		JobRetention:    time.Duration(viper.GetInt("JOB_RETENTION_DAYS")) * 24 * time.Hour,
	}, nil
}
