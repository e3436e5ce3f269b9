// @title Netpulse API
// @description Backend API for network speed test measurements, user feedback and privacy settings
// @accept json
// @produce json
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	muxprom "gitlab.com/msvechla/mux-prometheus/pkg/middleware"

	"github.com/netpulse/netpulse-api/api"
	"github.com/netpulse/netpulse-api/config"
	"github.com/netpulse/netpulse-api/infrastructure"
	"github.com/netpulse/netpulse-api/usecase"
)

func main() {
	logger := log.New(os.Stdout, api.DataAPIPrefix, log.LstdFlags|log.Lshortfile)

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatal("Problem loading config: ", err)
	}

	store, err := infrastructure.NewStoreClient(&cfg.Mongo, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer store.Close()
	store.Start()
	store.WaitUntilStarted()

	speedTestRepository := infrastructure.NewSpeedTestMongoRepository(store)
	feedbackRepository := infrastructure.NewFeedbackMongoRepository(store)
	privacySettingsRepository := infrastructure.NewPrivacySettingsMongoRepository(store)

	speedTestUseCase := usecase.NewSpeedTestUseCase(logger, speedTestRepository)
	feedbackUseCase := usecase.NewFeedbackUseCase(logger, feedbackRepository)
	privacySettingsUseCase := usecase.NewPrivacySettingsUseCase(logger, privacySettingsRepository)

	/*
	 * Instrumentation setup
	 */
	instrumentation := muxprom.NewCustomInstrumentation(true, "netpulse", "api", prometheus.DefBuckets, nil, prometheus.DefaultRegisterer)

	rtr := mux.NewRouter()
	rtr.Use(instrumentation.Middleware)
	rtr.Path("/metrics").Handler(promhttp.Handler())

	netpulseAPI := api.InitAPI(speedTestUseCase, feedbackUseCase, privacySettingsUseCase, store, logger, cfg.MaxBodyBytes)
	netpulseAPI.SetHandlers("", rtr)

	// the mobile clients call this API from web views on other origins
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut}),
		handlers.AllowedHeaders([]string{"Content-Type", "x-netpulse-trace-session"}),
	)(rtr)

	// ability to return compressed (gzip/deflate) responses if client browser
	// accepts it, interesting for the potentially long GET /api/tests responses
	gzipHandler := handlers.CompressHandler(corsHandler)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: gzipHandler,
	}

	// Wait for SIGINT (Ctrl+C) or SIGTERM to stop the service
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Print("forcing server stop: ", err)
			server.Close()
		}
		store.Close()
	}()

	logger.Print("serving on ", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal(err)
	}
}
