package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wellbeing_station/internal/actuator"
	"wellbeing_station/internal/config"
	"wellbeing_station/internal/connectivity"
	"wellbeing_station/internal/handlers"
	"wellbeing_station/internal/hardware"
	"wellbeing_station/internal/logger"
	"wellbeing_station/internal/repository"
	"wellbeing_station/internal/repository/db"
	"wellbeing_station/internal/scheduler"
	"wellbeing_station/internal/sensors"
	"wellbeing_station/internal/server"
	"wellbeing_station/internal/service"
	"wellbeing_station/internal/thresholds"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load config.yml (optional) over compiled-in defaults
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.LogLevel)

	// open DB
	sqlDB, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DBPath)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos)
	apiHandler := handlers.NewHandler(services, log)

	// context for the control loop
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	board := newBoard(log)
	topics := scheduler.NewTopics(cfg.MQTT.BaseTopic)
	network := newNetwork(ctx, cfg, topics, services.Journal, log)

	loop := scheduler.New(scheduler.Deps{
		Network:   network,
		Sensors:   sensors.NewStation(board),
		Actuators: actuator.NewDriver(board),
		Journal:   services.Journal,
		Topics:    topics,
		Log:       log.Named("loop"),
	})
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(ctx)
	}()

	// start HTTP server
	srv := server.New(cfg.HTTPPort, apiHandler.InitRoutes())
	runHTTPServer(srv, log)

	// graceful shutdown
	waitForShutdown(cancel, loopDone, network, srv, log)
}

// newBoard builds the pin set of the simulated desk.
func newBoard(log *logger.Logger) hardware.Board {
	desk := hardware.NewDesk(time.Now, time.Now().UnixNano(), hardware.DefaultPostureProfile())
	return desk.Board(log.Named("pins"))
}

// newNetwork wires the wireless link and the MQTT session into a manager
// that journals every connectivity change.
func newNetwork(ctx context.Context, cfg config.Config, topics scheduler.Topics, journal service.Journal, log *logger.Logger) *connectivity.Manager {
	netLog := log.Named("net")
	link := connectivity.NewInterfaceLink(cfg.WiFi.Interface, cfg.WiFi.SSID)
	session := connectivity.NewPahoSession(cfg.MQTT, topics.Status, netLog)
	return connectivity.NewManager(link, session, connectivity.Options{
		LinkRetry:     connectivity.FixedRetry(thresholds.AssociateRetryDelay),
		BrokerRetry:   connectivity.FixedRetry(thresholds.BrokerRetryDelay),
		StatusTopic:   topics.Status,
		OnStateChange: scheduler.ConnectivityRecorder(ctx, journal, netLog),
	}, netLog)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		log.Infow("http_listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals, stops the loop, announces
// the station offline and stops the HTTP server.
func waitForShutdown(cancel context.CancelFunc, loopDone <-chan struct{}, network *connectivity.Manager, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down station...")

	// stop the control loop and wait until it has left its iteration
	cancel()
	<-loopDone

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := network.Close(ctx); err != nil {
		log.Warnw("mqtt_disconnect_failed", "err", err)
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
