package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopdesk/internal/app"
	"github.com/vladislavdragonenkov/shopdesk/internal/version"
)

// setupLogger настраивает формат и уровень логирования.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

func main() {
	showVersion := flag.Bool("version", false, "напечатать версию и выйти")
	flag.Parse()

	if *showVersion {
		fmt.Printf("shopdesk %s (commit %s, built %s)\n", version.GetVersion(), version.GetCommit(), version.GetDate())
		return
	}

	setupLogger()
	cfg := app.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.WithField("component", "shopdesk")
	logger.WithFields(log.Fields{
		"storage_driver": cfg.StorageDriver,
		"metrics_addr":   cfg.MetricsAddr,
	}).Info("запускаем shopdesk")

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("не удалось собрать зависимости")
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	metricsSrv := app.StartMetricsServer(ctx, cfg.MetricsAddr, logger)
	defer app.ShutdownHTTP(metricsSrv, logger)

	session := newSession(deps, bufio.NewScanner(os.Stdin), os.Stdout)
	if err := session.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	logger.Info("shopdesk остановлен")
}
