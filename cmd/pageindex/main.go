// Command pageindex indexes page documents and searches them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/pageindex/internal/adapters/driven/backend"
	"github.com/custodia-labs/pageindex/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/cli"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/watch"
	"github.com/custodia-labs/pageindex/internal/core/services"
	"github.com/custodia-labs/pageindex/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	settingsService := services.NewSettingsService(configStore)

	svc := cli.Services{Settings: settingsService}
	result, err := wire(settingsService, &svc)
	if err != nil {
		// Config commands still work, so a broken setting can be fixed.
		logger.Warn("Startup: %v", err)
		svc.InitErr = err
	}
	if result != nil {
		defer func() {
			if err := result.Close(); err != nil {
				logger.Error("Closing index: %v", err)
			}
		}()
	}

	cli.SetServices(svc)
	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}

// wire builds the adapters from settings and fills in the services.
func wire(settingsService *services.SettingsService, svc *cli.Services) (*backend.InitResult, error) {
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	result, err := backend.Init(settings)
	if err != nil {
		return nil, err
	}

	indexService := services.NewIndexService(result.Pages, result.IndexStore)
	indexService.SetDefaultLanguage(settings.Search.DefaultLanguage)
	searchService := services.NewSearchService(result.IndexStore)
	searchService.SetDefaults(settings.Search.DefaultLanguage, settings.Search.DefaultLimit)

	svc.Index = indexService
	svc.Search = searchService
	svc.Watcher = watch.New(result.Folder, indexService, watch.Options{
		Invalidate: result.Invalidate,
	})
	return result, nil
}
