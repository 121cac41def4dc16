package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/kisan/internal/cli"
	"github.com/at-ishikawa/kisan/internal/icon"
	"github.com/at-ishikawa/kisan/internal/panel"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentWeatherRequests = 4

func newWeatherCommand() *cobra.Command {
	var (
		lang     LanguageFlag
		saveIcon bool
	)
	command := &cobra.Command{
		Use:   "weather <city> [city...]",
		Short: "Show the current weather for one or more cities",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, cfg)
			if err != nil {
				return err
			}
			client := newClient(cfg)
			defer closeClient(client)

			fetcher := icon.NewFetcher(cfg.Weather.IconBaseURL, cfg.Weather.IconCacheDirectory)
			defer closeClient(fetcher)

			code := languageOrDefault(lang, cfg)
			ctx := cmd.Context()
			panels := make([]*panel.Weather, len(args))
			results := make([]*cli.WeatherResult, len(args))

			var g errgroup.Group
			g.SetLimit(maxConcurrentWeatherRequests)
			for i, city := range args {
				p := panel.NewWeather(client, code, cfg.Weather.IconBaseURL)
				p.SetCity(city)
				panels[i] = p
				g.Go(func() error {
					if err := p.Submit(ctx); err != nil {
						return fmt.Errorf("weather for %q > %w", city, err)
					}
					snapshot, _ := p.Snapshot()
					result := cli.NewWeatherResult(city, snapshot, p.IconURL())
					if saveIcon {
						path, err := fetcher.Fetch(ctx, snapshot.Icon())
						if err != nil {
							slog.Default().Warn("failed to save weather icon", "city", city, "error", err)
						}
						result.IconPath = path
					}
					results[i] = &result
					return nil
				})
			}
			groupErr := g.Wait()

			var succeeded []cli.WeatherResult
			for i, result := range results {
				if result == nil {
					if err := notify(renderer, panels[i]); err != nil {
						return err
					}
					continue
				}
				succeeded = append(succeeded, *result)
			}
			if len(succeeded) > 0 {
				if err := renderer.Weather(succeeded); err != nil {
					return fmt.Errorf("renderer.Weather > %w", err)
				}
			}
			if groupErr != nil {
				return fmt.Errorf("failed to get weather for %d of %d cities (%s) > %w",
					len(args)-len(succeeded), len(args), strings.Join(failedCities(args, results), ", "), groupErr)
			}
			return nil
		},
	}
	addLanguageFlag(command, &lang)
	command.Flags().BoolVar(&saveIcon, "save-icon", false, "Download the condition icon into weather.icon_cache_directory")
	return command
}

func failedCities(cities []string, results []*cli.WeatherResult) []string {
	var failed []string
	for i, result := range results {
		if result == nil {
			failed = append(failed, cities[i])
		}
	}
	return failed
}
