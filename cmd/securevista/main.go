package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/securevista/securevista/config"
	"github.com/securevista/securevista/internal/app"
	"github.com/securevista/securevista/internal/webapi"
)

var (
	cfile       = flag.String("c", "securevista.yml", "config file")
	showVersion = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	cfg := config.LoadConfig(*cfile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	server := webapi.NewWebServer(application)
	go func() {
		if err := server.Start(); err != nil {
			zap.S().Fatalf("web server stopped: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	zap.S().Info("shutting down")
}
