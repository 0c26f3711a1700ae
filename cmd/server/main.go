package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/app/reflist/queries/list_items"
	"github.com/murkotick/reflist-service/internal/app/reflist/usecases/reconcile_list"
	"github.com/murkotick/reflist-service/internal/config"
	"github.com/murkotick/reflist-service/internal/observability"
	"github.com/murkotick/reflist-service/internal/pkg/clock"
	"github.com/murkotick/reflist-service/internal/pkg/keylock"
	grpchealth "github.com/murkotick/reflist-service/internal/transport/grpc/health"
	httpreflist "github.com/murkotick/reflist-service/internal/transport/http/reflist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("logger: %v", err)
	}
	mode, err := reconcile_list.ParseMode(cfg.ReconcileMode)
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM.
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		logger.Info("shutdown signal received")
		cancel()
	}()

	clk := clock.RealClock{}
	be, err := openBackend(ctx, cfg, clk, logger)
	if err != nil {
		logger.Fatalf("open %s backend: %v", cfg.Backend, err)
	}
	defer be.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	opts := reconcile_list.Options{Mode: mode, Events: be.events, Recorder: metrics}
	if cfg.ReconcileSerialize {
		opts.Locks = keylock.New()
	}

	endpoints := make(map[domain.ListKey]httpreflist.Endpoint, len(be.stores))
	for _, spec := range domain.Lists() {
		store := be.stores[spec.Key]
		endpoints[spec.Key] = httpreflist.Endpoint{
			Reconcile: reconcile_list.NewInteractor(spec, store, clk, logger, opts),
			List:      list_items.NewHandler(store),
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := httpreflist.NewRouter(httpreflist.NewHandler(endpoints, logger), httpreflist.RouterConfig{
		Gate:         httpreflist.NewTokenGate(cfg.AdminToken),
		Logger:       logger,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Metrics:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Ready:        be.ready,
	})
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcSrv := grpc.NewServer()
	health := grpchealth.NewServer(domain.Lists(), be.ready, logger)
	health.Register(grpcSrv)
	go health.Run(ctx, 15*time.Second)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatalf("listen %s: %v", cfg.GRPCAddr, err)
	}

	go func() {
		logger.WithField("addr", cfg.GRPCAddr).Info("gRPC health server listening")
		if err := grpcSrv.Serve(lis); err != nil {
			logger.WithError(err).Error("grpc serve")
			cancel()
		}
	}()
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":    cfg.HTTPAddr,
			"backend": cfg.Backend,
			"mode":    string(mode),
		}).Info("HTTP server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("http serve")
			cancel()
		}
	}()

	<-ctx.Done()
	health.Shutdown()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("http shutdown")
	}

	stopped := make(chan struct{})
	go func() {
		grpcSrv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		logger.Warn("forcing gRPC server stop")
		grpcSrv.Stop()
	}
	logger.Info("server stopped")
}
