package cli

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	reviews "github.com/AdivarekarBhumit/Yelp-Reviews-Classification"
)

// Config holds pipeline defaults, read from YELP_-prefixed environment
// variables (after loading .env when present). Every value can be overridden
// with a command-line flag.
type Config struct {
	DataPath     string  `envconfig:"DATA_PATH" default:"data/reviews.csv"`
	Cutoff       int     `envconfig:"CUTOFF" default:"25"`
	LearningRate float64 `envconfig:"LEARNING_RATE" default:"0.01"`
	Epochs       int     `envconfig:"EPOCHS" default:"25"`
	BatchSize    int     `envconfig:"BATCH_SIZE" default:"128"`
	L2           float64 `envconfig:"L2" default:"0.0001"`
	Seed         int64   `envconfig:"SEED" default:"1337"`
	TrainFrac    float64 `envconfig:"TRAIN_FRAC" default:"0.7"`
	ValFrac      float64 `envconfig:"VAL_FRAC" default:"0.15"`
}

// LoadConfig reads the environment into a Config. A missing .env file is not
// an error.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	err := envconfig.Process("yelp", &cfg)
	return cfg, err
}

// trainOptions are the flag-bound hyperparameters shared by the train and
// evaluate commands.
type trainOptions struct {
	dataPath  string
	cutoff    int
	lr        float64
	epochs    int
	batchSize int
	l2        float64
	seed      int64
}

func (c *CLI) addTrainFlags(cmd *cobra.Command, o *trainOptions) {
	cmd.Flags().StringVar(&o.dataPath, "data", c.config.DataPath, "Path to the review CSV")
	cmd.Flags().IntVar(&o.cutoff, "cutoff", c.config.Cutoff, "Corpus frequency a token must exceed to enter the vocabulary")
	cmd.Flags().Float64Var(&o.lr, "lr", c.config.LearningRate, "SGD learning rate")
	cmd.Flags().IntVar(&o.epochs, "epochs", c.config.Epochs, "Training epochs")
	cmd.Flags().IntVar(&o.batchSize, "batch-size", c.config.BatchSize, "Minibatch size")
	cmd.Flags().Float64Var(&o.l2, "l2", c.config.L2, "L2 weight decay")
	cmd.Flags().Int64Var(&o.seed, "seed", c.config.Seed, "Seed for split assignment and shuffling")
}

func (c *CLI) trainConfig(o trainOptions) *reviews.TrainConfig {
	return &reviews.TrainConfig{
		Cutoff:       o.cutoff,
		LearningRate: o.lr,
		Epochs:       o.epochs,
		BatchSize:    o.batchSize,
		L2:           o.l2,
		Seed:         o.seed,
		TrainFrac:    c.config.TrainFrac,
		ValFrac:      c.config.ValFrac,
		Verbose:      c.verbose,
	}
}
