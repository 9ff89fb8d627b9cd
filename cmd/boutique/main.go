package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"boutique/internal/config"
	applog "boutique/internal/log"
	"boutique/internal/repos"
	"boutique/internal/server"
)

func main() {
	cfg := config.Load()
	applog.SetLevel(cfg.LogLevel)

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			logrus.Warnf("[log] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			mw := io.MultiWriter(os.Stdout, f)
			applog.SetOutput(mw)
			logrus.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("open db %s: %v", cfg.DBPath, err)
	}
	defer db.Close()

	app := server.New(db, cfg, server.DefaultLimits)
	logrus.Infof("[http] listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.Fatal(err)
	}
}
