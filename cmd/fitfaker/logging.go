package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging points the standard logger at stderr, teeing into a
// rotating file when a log directory is configured.
func setupLogging(cfg logConfig) {
	log.SetPrefix("[fitfaker] ")
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if cfg.Directory == "" {
		return
	}
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Directory, "fitfaker.log"),
		MaxSize:    orDefault(cfg.MaxSizeMB, 10),
		MaxAge:     orDefault(cfg.MaxAgeDays, 30),
		MaxBackups: orDefault(cfg.MaxBackups, 5),
		Compress:   cfg.Compress,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
