package main

import (
	"context"
	"log"
	"os"

	"github.com/Stay03/transcribeThis/internal/buildinfo"
	"github.com/Stay03/transcribeThis/internal/client/cli"
	"github.com/Stay03/transcribeThis/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
