package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config logger seçenekleri.
type Config struct {
	Env     string // development -> okunabilir konsol; diğerleri -> JSON
	Level   string // trace, debug, info, warn, error
	Service string // boş değilse her satıra "service" alanı olarak yazılır
	Out     io.Writer
}

// Logger uygulama katmanlarına enjekte edilen zerolog sarmalayıcısı.
type Logger struct {
	zl zerolog.Logger
}

// New logger'ı kurar ve global zerolog logger'ını da ona yönlendirir; fiber
// middleware'leri ve http katmanı log paketini doğrudan kullanır.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Out != nil {
		w = cfg.Out
	}
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	zl := ctx.Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// Nop hiçbir şey yazmaz; testlerde ve opsiyonel bağımlılıklarda kullanılır.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Component "cmp" alanı eklenmiş alt logger döner (http, ws, seed, notifier...).
func (l *Logger) Component(name string) *Logger {
	return &Logger{zl: l.zl.With().Str("cmp", name).Logger()}
}

// Tenant şirket ve kullanıcı alanlarını taşıyan alt logger döner. Boş alanlar yazılmaz.
func (l *Logger) Tenant(companyID, userID string) *Logger {
	ctx := l.zl.With()
	if companyID != "" {
		ctx = ctx.Str("company_id", companyID)
	}
	if userID != "" {
		ctx = ctx.Str("user_id", userID)
	}
	return &Logger{zl: ctx.Logger()}
}

// Zerolog doğrudan API gerektiğinde iç logger'ı döner.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
