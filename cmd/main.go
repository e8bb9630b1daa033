package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Shriramtantry/task-manager/internal/broker"
	"github.com/Shriramtantry/task-manager/internal/config"
	"github.com/Shriramtantry/task-manager/internal/handlers"
	"github.com/Shriramtantry/task-manager/internal/logger"
	"github.com/Shriramtantry/task-manager/internal/repository"
	"github.com/Shriramtantry/task-manager/internal/repository/db"
	"github.com/Shriramtantry/task-manager/internal/server"
	"github.com/Shriramtantry/task-manager/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default configs/config.yml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel, logger.FormatConsole).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := db.InitDB(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Fatalw("failed to init database", "driver", cfg.DB.Driver, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()
	log.Infow("database ready", "driver", cfg.DB.Driver)

	// optional activity sink
	var pub service.Publisher
	if cfg.Kafka.Enabled {
		kp := broker.NewActivityPublisher(broker.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, log), log)
		defer func() {
			if cerr := kp.Close(); cerr != nil {
				log.Errorw("failed to close kafka writer", "err", cerr)
			}
		}()
		pub = kp
		log.Infow("kafka activity sink enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	// wire dependencies
	repos := repository.NewRepository(conn, cfg.DB.QueryTimeout)
	services := service.NewService(repos, pub, log)
	apiHandler := handlers.NewHandler(services, log, handlers.WithStaticDir(cfg.Static.Dir))

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, cfg, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	router := handler.InitRoutes()
	go func() {
		log.Infow("server started", "port", port)
		if err := srv.Run(port, router); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, cfg *config.Config, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
