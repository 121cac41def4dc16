package main

import (
	"fmt"
	"path/filepath"

	"github.com/at-ishikawa/kisan/internal/cli"
	"github.com/at-ishikawa/kisan/internal/panel"
	"github.com/spf13/cobra"
)

func newCropCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "crop <image>",
		Short: "Identify the crop in a JPG or PNG image",
		Args:  cobra.ExactArgs(1),
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

			crop := panel.NewCrop(client)
			if err := crop.SelectFile(args[0]); err != nil {
				if notifyErr := notify(renderer, crop); notifyErr != nil {
					return notifyErr
				}
				return fmt.Errorf("crop.SelectFile > %w", err)
			}
			if err := crop.Submit(cmd.Context()); err != nil {
				if notifyErr := notify(renderer, crop); notifyErr != nil {
					return notifyErr
				}
				return fmt.Errorf("crop.Submit > %w", err)
			}
			return renderer.Crop(cli.CropResult{
				Filename: filepath.Base(args[0]),
				Crop:     crop.Detection(),
			})
		},
	}
}
