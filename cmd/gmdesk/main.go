// gmdesk is the GM support-ticket service: it loads open tickets from the
// database into the in-memory registry and serves the operator/submitter API.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/realmkit/gmdesk/internal/api"
	"github.com/realmkit/gmdesk/internal/config"
	"github.com/realmkit/gmdesk/internal/database"
	"github.com/realmkit/gmdesk/internal/notifications"
	"github.com/realmkit/gmdesk/internal/registry"
	"github.com/realmkit/gmdesk/internal/repository"
)

func main() {
	configPath := flag.String("config", os.Getenv("GMDESK_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(database.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := repository.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	// The registry is an explicit instance owned here, handed to the API by
	// reference. The notifier defaults to the in-memory implementation until
	// a session gateway calls notifications.SetNotifier.
	reg := registry.New(repository.NewTicketRepository(db), notifications.GetNotifier(), cfg.Tickets.AcceptByDefault)
	if err := reg.LoadAll(ctx); err != nil {
		log.Fatalf("failed to load tickets: %v", err)
	}
	log.Printf("loaded %d open tickets", reg.Count())

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "tickets": reg.Count()})
	})
	api.NewRouter(reg, cfg.Tickets.MaxQuestionLen).Register(r)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}

	go func() {
		log.Printf("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Every mutation is already durable; shutdown only has to drain requests.
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
