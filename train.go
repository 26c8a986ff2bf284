package reviews

import (
	"fmt"
	"log/slog"

	"github.com/AdivarekarBhumit/Yelp-Reviews-Classification/classifier"
	"github.com/AdivarekarBhumit/Yelp-Reviews-Classification/internal/dataset"
	"github.com/AdivarekarBhumit/Yelp-Reviews-Classification/internal/textutil"
	"github.com/AdivarekarBhumit/Yelp-Reviews-Classification/internal/vectorizer"
)

// TrainConfig holds configuration for training.
type TrainConfig struct {
	Cutoff       int
	LearningRate float64
	Epochs       int
	BatchSize    int
	L2           float64
	Seed         int64
	TrainFrac    float64
	ValFrac      float64
	Verbose      bool
}

// DefaultTrainConfig returns the default training configuration.
func DefaultTrainConfig() *TrainConfig {
	sgd := classifier.DefaultTrainConfig()
	return &TrainConfig{
		Cutoff:       vectorizer.DefaultCutoff,
		LearningRate: sgd.LearningRate,
		Epochs:       sgd.Epochs,
		BatchSize:    sgd.BatchSize,
		L2:           sgd.L2,
		Seed:         sgd.Seed,
		TrainFrac:    dataset.DefaultTrainFrac,
		ValFrac:      dataset.DefaultValFrac,
	}
}

// EvalConfig holds configuration for evaluation.
type EvalConfig struct {
	Split   string // which split to score, default test
	Train   *TrainConfig
	Verbose bool
}

// EvalResult holds held-out evaluation results.
type EvalResult struct {
	Split      string
	Accuracy   float64
	Correct    int
	Total      int
	Loss       float64
	MacroF1    float64
	WeightedF1 float64
	Classes    []string
	Confusion  map[string]map[string]int
	Precision  map[string]float64
	Recall     map[string]float64
	F1         map[string]float64
}

// Train fits a classifier on the train split of the review CSV at csvPath.
// Records without a split tag get a deterministic stratified assignment
// first. The vectorizer is built over the whole corpus, so every rating
// label in the file is representable.
func Train(csvPath string, config *TrainConfig) (*Classifier, error) {
	ds, cfg, err := loadForTraining(csvPath, config)
	if err != nil {
		return nil, err
	}
	return trainOnDataset(ds, cfg)
}

// Evaluate trains on the train split and scores the held-out split named in
// the config (test by default).
func Evaluate(csvPath string, config *EvalConfig) (*EvalResult, error) {
	split := dataset.SplitTest
	var trainCfg *TrainConfig
	if config != nil {
		if config.Split != "" {
			split = config.Split
		}
		trainCfg = config.Train
		if trainCfg != nil && config.Verbose {
			trainCfg.Verbose = true
		}
	}

	ds, cfg, err := loadForTraining(csvPath, trainCfg)
	if err != nil {
		return nil, err
	}
	c, err := trainOnDataset(ds, cfg)
	if err != nil {
		return nil, err
	}

	result, err := c.evaluateSplit(ds, split)
	if err != nil {
		return nil, err
	}
	if result.Total == 0 {
		return nil, fmt.Errorf("reviews: split %q is empty", split)
	}
	return result, nil
}

func loadForTraining(csvPath string, config *TrainConfig) (*dataset.Dataset, *TrainConfig, error) {
	cfg := DefaultTrainConfig()
	if config != nil {
		cfg = config
	}

	ds, err := dataset.LoadWithSplits(csvPath, cfg.Seed, cfg.TrainFrac, cfg.ValFrac)
	if err != nil {
		return nil, nil, fmt.Errorf("reviews: %w", err)
	}
	if len(ds.Split(dataset.SplitTrain)) == 0 {
		return nil, nil, fmt.Errorf("reviews: no training records in %s", csvPath)
	}
	return ds, cfg, nil
}

func trainOnDataset(ds *dataset.Dataset, cfg *TrainConfig) (*Classifier, error) {
	texts := make([]string, 0, ds.Len())
	ratings := make([]string, 0, ds.Len())
	for _, tag := range []string{dataset.SplitTrain, dataset.SplitVal, dataset.SplitTest} {
		t, r := ds.TrainingData(tag)
		for i := range t {
			texts = append(texts, textutil.CleanReview(t[i]))
		}
		ratings = append(ratings, r...)
	}

	vec := vectorizer.FromDataset(texts, ratings, cfg.Cutoff)
	slog.Info("Vectorizer built",
		"review_vocab", vec.ReviewVocab.Size(), "rating_vocab", vec.RatingVocab.Size(), "cutoff", cfg.Cutoff)

	c := &Classifier{vec: vec}
	trainer := classifier.NewTrainer(vec.ReviewVocab.Size(), vec.RatingVocab.Size(), classifier.TrainConfig{
		LearningRate: cfg.LearningRate,
		Epochs:       cfg.Epochs,
		BatchSize:    cfg.BatchSize,
		L2:           cfg.L2,
		Seed:         cfg.Seed,
		Verbose:      cfg.Verbose,
	})

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		batches := ds.Batches(dataset.SplitTrain, cfg.BatchSize, true, true, cfg.Seed+int64(epoch))
		if len(batches) == 0 {
			// Tiny dataset: fall back to one whole-split batch.
			batches = ds.Batches(dataset.SplitTrain, len(ds.Split(dataset.SplitTrain)), true, false, cfg.Seed+int64(epoch))
		}

		epochLoss := 0.0
		for _, batch := range batches {
			xs, ys, err := c.vectorizeBatch(batch)
			if err != nil {
				return nil, err
			}
			epochLoss += trainer.Step(xs, ys)
		}
		epochLoss /= float64(len(batches))

		if cfg.Verbose {
			c.model = trainer.Model()
			valResult, err := c.evaluateSplit(ds, dataset.SplitVal)
			if err != nil {
				return nil, err
			}
			slog.Info("Epoch finished", "epoch", epoch+1, "train_loss", epochLoss,
				"val_loss", valResult.Loss, "val_acc", valResult.Accuracy)
		} else {
			slog.Debug("Epoch finished", "epoch", epoch+1, "train_loss", epochLoss)
		}
	}

	c.model = trainer.Model()
	return c, nil
}

// vectorizeBatch converts records into feature vectors and target class
// indices. An unknown rating label is a data-integrity error and propagates.
func (c *Classifier) vectorizeBatch(batch []dataset.Review) ([][]float32, []int, error) {
	xs := make([][]float32, len(batch))
	ys := make([]int, len(batch))
	for i, rec := range batch {
		xs[i] = c.vec.Vectorize(textutil.CleanReview(rec.Text))
		y, err := c.vec.RatingVocab.LookupToken(rec.Rating)
		if err != nil {
			return nil, nil, fmt.Errorf("reviews: rating %q: %w", rec.Rating, err)
		}
		ys[i] = y
	}
	return xs, ys, nil
}

func (c *Classifier) evaluateSplit(ds *dataset.Dataset, split string) (*EvalResult, error) {
	recs := ds.Split(split)
	result := &EvalResult{Split: split}
	if len(recs) == 0 {
		return result, nil
	}

	xs, ys, err := c.vectorizeBatch(recs)
	if err != nil {
		return nil, err
	}

	trueLabels := make([]string, len(recs))
	predLabels := make([]string, len(recs))
	for i, rec := range recs {
		trueLabels[i] = rec.Rating
		pred, err := c.vec.RatingVocab.LookupIndex(c.model.Predict(xs[i]))
		if err != nil {
			return nil, fmt.Errorf("reviews: %w", err)
		}
		predLabels[i] = pred
	}

	result.Confusion = classifier.Confusion(trueLabels, predLabels)
	result.Accuracy, result.Correct, result.Total = classifier.Accuracy(result.Confusion)
	result.Precision, result.Recall, result.F1 = classifier.PrecisionRecallF1(result.Confusion)
	result.MacroF1 = classifier.MacroF1(result.F1)
	result.WeightedF1 = classifier.WeightedF1(result.Confusion, result.F1)
	result.Classes = classifier.Classes(result.Confusion)
	result.Loss = c.model.Loss(xs, ys)
	return result, nil
}
