package main

import (
	"context"

	"lemonworks/adapter"
	"lemonworks/client/api"
	"lemonworks/common"
	"lemonworks/config"
	"lemonworks/event/sse"
	"lemonworks/infra/tracing"
	"lemonworks/inventory"
	"lemonworks/machinery"
	"lemonworks/production"
	"lemonworks/servehttp"
	"lemonworks/shell"
	"lemonworks/suppliers"
	"lemonworks/workers"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		logrus.Fatalf("load .env failed: %v", err)
	}
	cfg, err := config.ParseConfigFromEnv()
	if err != nil {
		logrus.Fatalf("parse config failed: %v", err)
	}
	if err := common.ConfigureLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		logrus.Fatalf("configure logging failed: %v", err)
	}
	logrus.WithField("api", cfg.APIBaseURL).Info("service start")

	if cfg.TracingEnabled {
		closer, err := tracing.InitGlobalTracer(cfg.ServiceName)
		if err != nil {
			logrus.Fatalf("tracer initialization failed: %v", err)
		}
		defer closer.Close()
	}

	client := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.APITimeout),
		api.WithRateLimit(cfg.APIRateLimit, cfg.APIRateBurst),
		api.WithHeader("User-Agent", cfg.ServiceName),
	)

	productionAPI := adapter.NewProductionAdapter(client)
	view := production.NewView(production.NewStore(productionAPI), productionAPI, production.ViewOptions{
		TickInterval:    cfg.TickInterval,
		MinLoadingDelay: cfg.MinLoadingDelay,
	})

	engine := servehttp.NewEngine()
	servehttp.RegisterProductionHandler(engine, view, sse.NewHub())
	servehttp.RegisterInventoryHandler(engine, inventory.NewManager(adapter.NewInventoryAdapter(client), cfg.ViewCacheTTL))
	servehttp.RegisterSuppliersHandler(engine, suppliers.NewManager(adapter.NewSuppliersAdapter(client), cfg.ViewCacheTTL))
	servehttp.RegisterWorkersHandler(engine, workers.NewManager(adapter.NewWorkersAdapter(client)))
	servehttp.RegisterMachineryHandler(engine, machinery.NewManager(adapter.NewMachineryAdapter(client), cfg.ViewCacheTTL))
	servehttp.RegisterShellHandler(engine, shell.New())

	mountCtx, cancelMount := context.WithCancel(context.Background())
	go func() {
		if err := view.Mount(mountCtx); err != nil {
			logrus.WithError(err).Warn("production view mount interrupted")
		}
	}()

	servehttp.StartHTTPServer(cfg.ListenAddr, engine)

	cancelMount()
	view.Unmount()
	logrus.Info("[QUIT] service exiting")
}
