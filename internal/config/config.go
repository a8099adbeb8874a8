package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定。
// 環境変数から読み、module-levelのシングルトンにはしない。
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // 指定があればDSNより優先
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string

	JWTSecret string // JWT署名シークレット

	GoEnv        string // dev/prod
	CookieSecure bool

	// メディア（S3）。未設定ならメディアAPIは503を返す。
	AWSRegion        string
	S3Bucket         string
	S3PublicBaseURL  string
	PresignExpirySec int64
}

// Loadは環境変数から設定を組み立てる
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "shop"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv:        getenv("GO_ENV", "dev"),
		CookieSecure: getenvBool("COOKIE_SECURE", true),

		AWSRegion:       os.Getenv("AWS_REGION"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
	}

	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	cfg.PostgresPort = pgPort

	expiry, err := atoiDefault("PRESIGN_EXPIRY_SEC", 900)
	if err != nil {
		return Config{}, err
	}
	cfg.PresignExpirySec = int64(expiry)

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
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

func getenvBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}

func atoiDefault(key string, def int) (int, error) {
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
