package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const datasetURL = "https://huggingface.co/datasets/AdivarekarBhumit/yelp-reviews/resolve/main/reviews_with_splits_lite.csv"

func (c *CLI) newDataCommand() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Manage the review dataset",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	var dest string
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download the review CSV from Hugging Face",
		Example: `  yelp-reviews data download
  yelp-reviews data download --data data/reviews.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dataDownload(dest)
		},
	}
	downloadCmd.Flags().StringVar(&dest, "data", c.config.DataPath, "Destination path for the review CSV")

	dataCmd.AddCommand(downloadCmd)
	return dataCmd
}

func dataDownload(dest string) error {
	slog.Info("Downloading review dataset", "url", datasetURL)
	resp, err := http.Get(datasetURL)
	if err != nil {
		return fmt.Errorf("download dataset: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download dataset: HTTP %d", resp.StatusCode)
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	written, err := io.Copy(f, resp.Body)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", dest, err)
	}
	_ = f.Close()

	slog.Info("Dataset downloaded", "path", dest, "size", fmt.Sprintf("%.1fMB", float64(written)/1024/1024))
	return nil
}
