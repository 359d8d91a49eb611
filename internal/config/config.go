package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL string // ホスティングDBの接続文字列（空ならPOSTGRES_*から組み立てる）

	GoEnv    string // dev/prod
	LogLevel string // debug/info/warn/error

	SeedDemo        bool    // 空DBにデモデータを入れる
	TracingEnabled  bool    // OpenTelemetry（stdout）
	ReviewRateLimit float64 // レビュー投稿の秒間上限（IPごと）。0以下で無効
	ReviewRateBurst int
}

func (c Config) IsDev() bool {
	return c.GoEnv != "prod"
}

// Addr はecho.Startに渡す形式
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// LoadDotEnv は.envがあれば読む（無ければ何もしない）
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Loadは環境変数
func Load() (Config, error) {
	rate, err := floatOr("REVIEW_RATE_LIMIT", 1)
	if err != nil {
		return Config{}, err
	}
	burst, err := intOr("REVIEW_RATE_BURST", 5)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		GoEnv:    getenv("GO_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		SeedDemo:        boolOr("SEED_DEMO", false),
		TracingEnabled:  boolOr("TRACING_ENABLED", false),
		ReviewRateLimit: rate,
		ReviewRateBurst: burst,
	}

	//必須チェック
	if _, err := strconv.Atoi(strings.TrimPrefix(cfg.Port, ":")); err != nil {
		return Config{}, fmt.Errorf("PORT must be number: %w", err)
	}
	switch cfg.GoEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("GO_ENV must be dev or prod")
	}
	if cfg.ReviewRateBurst < 1 {
		return Config{}, fmt.Errorf("REVIEW_RATE_BURST must be >= 1")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func boolOr(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func intOr(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func floatOr(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return f, nil
}
