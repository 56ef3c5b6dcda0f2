package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/infrastructure/rabbitmq"
	"github.com/jhoicas/ik-portal/internal/interfaces/ws"
	"github.com/jhoicas/ik-portal/pkg/config"
	"github.com/jhoicas/ik-portal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("yapılandırma yüklenemedi: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name}).Component("ws")
	if cfg.Rabbit.URI == "" {
		log.Fatal().Msg("RABBIT_URI tanımlı değil; bildirim sunucusu kuyruk olmadan çalışamaz")
	}

	hub := ws.NewHub(log)
	go hub.Run()

	consumer, err := rabbitmq.NewConsumer(cfg.Rabbit.URI, cfg.Rabbit.NotificationQueue, cfg.Rabbit.Prefetch, log)
	if err != nil {
		log.Fatal().Err(err).Msg("rabbitmq tüketicisi başlatılamadı")
	}
	defer func() { _ = consumer.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go consumer.Run(ctx, func(ev dto.NotificationEvent) {
		body, err := json.Marshal(ev)
		if err != nil {
			return
		}
		hub.SendToUser(ev.UserID, body)
	})

	mux := http.NewServeMux()
	mux.Handle("/ws", ws.Handler(hub, cfg.JWT.Secret, cfg.HTTP.AllowedOriginList(), log))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	srv := &http.Server{
		Addr:              cfg.WS.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.WS.Addr).Msg("websocket sunucusu dinliyor")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("websocket sunucusu durdu")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("kapatma sinyali alındı")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("websocket sunucusu kapatılamadı")
	}
	hub.Stop()
	log.Info().Msg("websocket sunucusu durduruldu")
}
