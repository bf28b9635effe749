package servehttp

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lemonworks/bizerror"
	"lemonworks/common"
	"lemonworks/infra/tracing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewEngine builds the gin engine with access logging, tracing and error rendering installed.
func NewEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.LoggerWithWriter(logrus.StandardLogger().WriterLevel(logrus.DebugLevel)))
	engine.Use(tracing.TracingIngress())
	engine.Use(bizerror.ErrorHandling())

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, common.GetServiceName())
	})
	return engine
}

// StartHTTPServer serves until SIGINT or SIGTERM, then shuts down gracefully.
func StartHTTPServer(addr string, engine *gin.Engine) {
	// request contexts end on shutdown so event streams let go of their connections
	baseCtx, endRequests := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:        addr,
		Handler:     engine,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(endRequests)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			// will call os.Exit(1)
			logrus.Fatalf("listen: %v", err)
		}
	}()
	logrus.WithField("addr", addr).Info("http server started")

	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 send syscall.SIGINT
	// kill -9 send syscall.SIGKILL, can't be caught
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("[QUIT] shutdown signal has been received, the service will exit in 3 seconds.")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	// graceful shutdown http.Server
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("[QUIT] http server shutdown failed: %v", err)
		return
	}
	logrus.Info("[QUIT] http server is shutdown gracefully, new request will be rejected.")
}
