package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/usermanager/internal/buildinfo"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/dmitrijs2005/usermanager/internal/mockapi"
	"github.com/dmitrijs2005/usermanager/internal/mockapi/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app := mockapi.NewApp(cfg, logger)
	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

}
