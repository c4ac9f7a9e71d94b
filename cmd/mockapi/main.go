package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/employera/internal/buildinfo"
	"github.com/dmitrijs2005/employera/internal/mockapi"
	"github.com/dmitrijs2005/employera/internal/mockapi/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := mockapi.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
