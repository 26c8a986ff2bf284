package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	reviews "github.com/AdivarekarBhumit/Yelp-Reviews-Classification"
)

func (c *CLI) newTrainCommand() *cobra.Command {
	var o trainOptions

	cmd := &cobra.Command{
		Use:   "train <modelfile>",
		Short: "Train a rating classifier on the review dataset",
		Args:  cobra.ExactArgs(1),
		Example: `  yelp-reviews train model.json --data data/reviews.csv
  yelp-reviews train model.json --cutoff 25 --epochs 50 -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			modelPath := args[0]
			slog.Info("Training classifier", "data", o.dataPath, "output", modelPath)
			start := time.Now()
			cl, err := reviews.Train(o.dataPath, c.trainConfig(o))
			if err != nil {
				return err
			}
			slog.Debug("Training completed", "duration", time.Since(start))
			if err := cl.Save(modelPath); err != nil {
				return err
			}
			slog.Info("Model saved", "path", modelPath)
			return nil
		},
	}

	c.addTrainFlags(cmd, &o)
	return cmd
}
