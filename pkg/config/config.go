package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Desteklenen kalıcılık sürücüleri.
const (
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

// Config uygulama yapılandırmasını gruplar (Viper ile ortam değişkenlerinden ve isteğe bağlı dosyadan okunur).
type Config struct {
	App     AppConfig
	Storage StorageConfig
	DB      DBConfig
	Mongo   MongoConfig
	JWT     JWTConfig
	Auth    AuthConfig
	HTTP    HTTPConfig
	Rabbit  RabbitConfig
	WS      WSConfig
	S3      S3Config
	AI      AIConfig
}

// AppConfig genel uygulama ayarları.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// IsDevelopment geliştirme ortamında true döner.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// StorageConfig hangi kalıcılık katmanının kullanılacağını belirler.
type StorageConfig struct {
	Driver string // postgres | mongo
}

// DBConfig PostgreSQL ayarları.
// DatabaseURL boş değilse tam bağlantı dizesi olarak kullanılır.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	AutoMigrate bool
}

// ConnectionString kullanılacak DSN'i döner: tanımlıysa DATABASE_URL, değilse DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN özel karakterli parolalar için URL kodlamalı PostgreSQL bağlantı dizesi üretir.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// MongoConfig MongoDB ayarları.
type MongoConfig struct {
	URI      string
	Database string
}

// JWTConfig JWT ayarları.
type JWTConfig struct {
	Secret     string
	Expiration int // dakika
	Issuer     string
}

// AuthConfig oturum çerezi ayarları.
type AuthConfig struct {
	CookieName   string
	CookieSecure bool
}

// HTTPConfig HTTP sunucusu ayarları.
type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins string // virgülle ayrılmış liste
}

// Addr dinleme adresini (host:port) döner.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RabbitConfig bildirim kuyruğu ayarları. URI boşsa yayıncı devre dışıdır.
type RabbitConfig struct {
	URI               string
	NotificationQueue string
	Prefetch          int
}

// WSConfig websocket sunucusu ayarları.
type WSConfig struct {
	Addr string
}

// S3Config CV ve belge yüklemeleri için nesne deposu ayarları.
// Endpoint doluysa (ör. LocalStack) path-style erişim kullanılır.
// AccessKeyID boşsa SDK'nın varsayılan kimlik zinciri kullanılır.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// AIConfig aday değerlendirmesi için LLM sağlayıcı ayarları.
type AIConfig struct {
	Provider        string // anthropic | gemini
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string
}

// Load yapılandırmayı ortam değişkenlerinden (ve varsa .env / config.env dosyasından) okur.
// Ortam değişkenleri önceliklidir. Geliştirme dışı ortamlarda JWT_SECRET zorunludur.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // dosya yoksa yok say

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "ik-portal"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getString(v, "STORAGE_DRIVER", StoragePostgres)),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "ik_portal"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", false),
		},
		Mongo: MongoConfig{
			URI:      getString(v, "MONGO_URI", "mongodb://localhost:27017"),
			Database: getString(v, "MONGO_DB", "ik_portal"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "ik-portal"),
		},
		Auth: AuthConfig{
			CookieName:   getString(v, "AUTH_COOKIE_NAME", "ik_session"),
			CookieSecure: getBool(v, "AUTH_COOKIE_SECURE", false),
		},
		HTTP: HTTPConfig{
			Host:           getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:           getInt(v, "HTTP_PORT", 8080),
			AllowedOrigins: getString(v, "CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Rabbit: RabbitConfig{
			URI:               getString(v, "RABBIT_URI", ""),
			NotificationQueue: getString(v, "RABBIT_NOTIFICATION_QUEUE", "ik.notifications"),
			Prefetch:          getInt(v, "RABBIT_PREFETCH", 50),
		},
		WS: WSConfig{
			Addr: getString(v, "WS_ADDR", ":8090"),
		},
		S3: S3Config{
			Bucket:          getString(v, "S3_BUCKET", ""),
			Region:          getString(v, "S3_REGION", "eu-central-1"),
			Endpoint:        getString(v, "S3_ENDPOINT", ""),
			AccessKeyID:     getString(v, "S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getString(v, "S3_SECRET_ACCESS_KEY", ""),
		},
		AI: AIConfig{
			Provider:        strings.ToLower(getString(v, "AI_PROVIDER", "anthropic")),
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
			GeminiAPIKey:    getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:     getString(v, "GEMINI_MODEL", "gemini-1.5-flash"),
		},
	}

	if cfg.Storage.Driver != StoragePostgres && cfg.Storage.Driver != StorageMongo {
		return nil, fmt.Errorf("config: STORAGE_DRIVER %q desteklenmiyor (postgres|mongo)", cfg.Storage.Driver)
	}
	if cfg.JWT.Secret == "" {
		if !cfg.App.IsDevelopment() {
			return nil, fmt.Errorf("config: JWT_SECRET zorunludur")
		}
		cfg.JWT.Secret = "dev-only-secret"
	}
	return cfg, nil
}

// AllowedOriginList CORS_ALLOWED_ORIGINS değerini boşlukları temizlenmiş listeye çevirir.
func (c HTTPConfig) AllowedOriginList() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
