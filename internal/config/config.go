package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーション設定を表す
type Config struct {
	Env        string
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Ticketing  TicketingConfig
	Simulation SimulationConfig
}

// ServerConfig はシミュレータHTTPサーバーの設定
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	JWTSecret    string
	MetricsToken string

	// StoreBackend は占有ストアの実装 ("memory" または "postgres")
	StoreBackend string
}

// DatabaseConfig はデータベース設定
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig はRedis設定
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int

	// Enabled が真のとき座席ロックによるホールド調停を有効にする
	Enabled bool
}

// TicketingConfig は予約エンジンが接続するチケッティングAPIの設定
type TicketingConfig struct {
	BaseURL       string
	Timeout       time.Duration
	LayoutBaseURL string
	LayoutMaxSize int
}

// SimulationConfig はボット競争シミュレーションの設定
type SimulationConfig struct {
	MatchID        string
	VenueID        string
	BotCount       int
	HoldTTL        time.Duration
	SweepInterval  time.Duration
	BotMinInterval time.Duration
	BotMaxInterval time.Duration
	SelectionCap   int
}

// Load は環境変数から設定を読み込む。
// カレントディレクトリに .env があれば先に読み込む。
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-me"),
			MetricsToken: getEnv("METRICS_AUTH_TOKEN", ""),
			StoreBackend: getEnv("STORE_BACKEND", "memory"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "seatmap"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
		},
		Ticketing: TicketingConfig{
			BaseURL:       getEnv("TICKETING_BASE_URL", "http://localhost:8080"),
			Timeout:       getDurationEnv("TICKETING_TIMEOUT", 5*time.Second),
			LayoutBaseURL: getEnv("LAYOUT_BASE_URL", ""),
			LayoutMaxSize: getIntEnv("LAYOUT_MAX_SIZE", 1<<20),
		},
		Simulation: SimulationConfig{
			MatchID:        getEnv("SIM_MATCH_ID", "demo-match"),
			VenueID:        getEnv("SIM_VENUE_ID", "olympic-hall"),
			BotCount:       getIntEnv("SIM_BOT_COUNT", 30),
			HoldTTL:        getDurationEnv("SIM_HOLD_TTL", 2*time.Minute),
			SweepInterval:  getDurationEnv("SIM_SWEEP_INTERVAL", 10*time.Second),
			BotMinInterval: getDurationEnv("SIM_BOT_MIN_INTERVAL", 200*time.Millisecond),
			BotMaxInterval: getDurationEnv("SIM_BOT_MAX_INTERVAL", 1500*time.Millisecond),
			SelectionCap:   getIntEnv("SELECTION_CAP", 2),
		},
	}
}

// DSN はPostgreSQL接続文字列を返す
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

// Addr はRedis接続アドレスを返す
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
