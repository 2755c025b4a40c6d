package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/usermanager/internal/buildinfo"
	"github.com/dmitrijs2005/usermanager/internal/client/cli"
	"github.com/dmitrijs2005/usermanager/internal/client/config"
	"github.com/dmitrijs2005/usermanager/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
