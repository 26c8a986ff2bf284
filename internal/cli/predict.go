package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	reviews "github.com/AdivarekarBhumit/Yelp-Reviews-Classification"
)

func (c *CLI) newPredictCommand() *cobra.Command {
	var modelPath string
	var proba bool

	cmd := &cobra.Command{
		Use:   "predict [review text]",
		Short: "Predict the rating of a review from the arguments or stdin",
		Example: `  # Classify a review directly
  yelp-reviews predict "great food and friendly staff"

  # Pipe review text from a file
  cat review.txt | yelp-reviews predict

  # Show rating probabilities
  yelp-reviews predict --proba "mediocre at best"

  # Use custom model file
  yelp-reviews predict --model custom.json "terrible service"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var review string
			if len(args) > 0 {
				review = strings.Join(args, " ")
			} else {
				if isStdinTerminal() {
					return cmd.Help()
				}
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				review = string(data)
			}
			if strings.TrimSpace(review) == "" {
				return fmt.Errorf("empty review text")
			}

			cl, err := loadModel(modelPath)
			if err != nil {
				return err
			}

			if proba {
				probs, err := cl.PredictProba(review)
				if err != nil {
					return err
				}
				output, _ := json.MarshalIndent(probs, "", "  ")
				fmt.Println(string(output))
				return nil
			}

			rating, err := cl.Predict(review)
			if err != nil {
				return err
			}
			fmt.Println(rating)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "Path to model file (default: auto-detect)")
	cmd.Flags().BoolVar(&proba, "proba", false, "Show rating probabilities")
	return cmd
}

func loadModel(modelPath string) (*reviews.Classifier, error) {
	if modelPath == "" {
		slog.Debug("Locating model.json")
		return reviews.New()
	}
	slog.Debug("Loading model", "path", modelPath)
	return reviews.Load(modelPath)
}

func isStdinTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return true
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
