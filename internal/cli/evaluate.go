package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	reviews "github.com/AdivarekarBhumit/Yelp-Reviews-Classification"
)

func (c *CLI) newEvaluateCommand() *cobra.Command {
	var o trainOptions
	var split string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Train on the train split and score a held-out split",
		Example: `  yelp-reviews evaluate --data data/reviews.csv
  yelp-reviews evaluate --split val --epochs 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Info("Evaluating", "data", o.dataPath, "split", split)
			start := time.Now()
			result, err := reviews.Evaluate(o.dataPath, &reviews.EvalConfig{
				Split:   split,
				Train:   c.trainConfig(o),
				Verbose: c.verbose,
			})
			if err != nil {
				return err
			}
			slog.Debug("Evaluation completed", "duration", time.Since(start))

			color.Green.Printf("%s accuracy: %.1f%% (%d/%d)\n",
				result.Split, result.Accuracy*100, result.Correct, result.Total)
			fmt.Printf("Loss: %.4f  Macro F1: %.1f%%  Weighted F1: %.1f%%\n",
				result.Loss, result.MacroF1*100, result.WeightedF1*100)
			printConfusionMatrix(result)
			printClassReport(result)
			return nil
		},
	}

	c.addTrainFlags(cmd, &o)
	cmd.Flags().StringVar(&split, "split", "test", "Split to score (val or test)")
	return cmd
}

func printConfusionMatrix(result *reviews.EvalResult) {
	if len(result.Confusion) == 0 {
		return
	}
	fmt.Println("\nConfusion matrix (rows=true, cols=predicted):")

	table := tablewriter.NewWriter(os.Stdout)
	header := append([]string{"true/pred"}, result.Classes...)
	table.SetHeader(append(header, "total"))
	for _, trueClass := range result.Classes {
		row := []string{trueClass}
		total := 0
		for _, predClass := range result.Classes {
			n := result.Confusion[trueClass][predClass]
			total += n
			row = append(row, strconv.Itoa(n))
		}
		table.Append(append(row, strconv.Itoa(total)))
	}
	table.Render()
}

func printClassReport(result *reviews.EvalResult) {
	fmt.Println("\nPer-class metrics:")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"class", "precision", "recall", "f1", "support"})
	for _, cls := range result.Classes {
		support := 0
		for _, n := range result.Confusion[cls] {
			support += n
		}
		table.Append([]string{
			cls,
			fmt.Sprintf("%.1f%%", result.Precision[cls]*100),
			fmt.Sprintf("%.1f%%", result.Recall[cls]*100),
			fmt.Sprintf("%.1f%%", result.F1[cls]*100),
			strconv.Itoa(support),
		})
	}
	table.Render()
}
