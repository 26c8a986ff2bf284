package classifier

import (
	"math"
	"math/rand"
)

// TrainConfig holds the SGD hyperparameters.
type TrainConfig struct {
	LearningRate float64
	Epochs       int
	BatchSize    int
	L2           float64 // weight decay strength
	Seed         int64
	Verbose      bool
}

// DefaultTrainConfig returns the default training config.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		LearningRate: 0.01,
		Epochs:       25,
		BatchSize:    128,
		L2:           1e-4,
		Seed:         1337,
	}
}

// Trainer performs minibatch SGD with cross-entropy loss. The caller owns
// the epoch/batch loop and feeds one minibatch per Step; the trainer only
// owns the gradient arithmetic and the model being fitted.
type Trainer struct {
	model *Model
	cfg   TrainConfig
}

// NewTrainer creates a trainer around a fresh zero-initialized model.
func NewTrainer(numFeatures, numClasses int, cfg TrainConfig) *Trainer {
	return &Trainer{model: NewModel(numFeatures, numClasses), cfg: cfg}
}

// Model returns the model being trained.
func (t *Trainer) Model() *Model {
	return t.model
}

// Train fits a model on a fixed labeled set: cfg.Epochs passes of seeded
// shuffling and minibatch Steps of cfg.BatchSize. Callers that batch over a
// dataset themselves drive Step directly instead.
func Train(xs [][]float32, ys []int, cfg TrainConfig) *Model {
	if len(xs) == 0 {
		return NewModel(0, 0)
	}
	numClasses := 0
	for _, y := range ys {
		if y+1 > numClasses {
			numClasses = y + 1
		}
	}
	t := NewTrainer(len(xs[0]), numClasses, cfg)

	batchSize := cfg.BatchSize
	if batchSize <= 0 || batchSize > len(xs) {
		batchSize = len(xs)
	}
	order := make([]int, len(xs))
	for i := range order {
		order[i] = i
	}
	bx := make([][]float32, 0, batchSize)
	by := make([]int, 0, batchSize)

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		rng := rand.New(rand.NewSource(cfg.Seed + int64(epoch)))
		rng.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })

		for start := 0; start < len(order); start += batchSize {
			end := start + batchSize
			if end > len(order) {
				end = len(order)
			}
			bx, by = bx[:0], by[:0]
			for _, i := range order[start:end] {
				bx = append(bx, xs[i])
				by = append(by, ys[i])
			}
			t.Step(bx, by)
		}
	}
	return t.Model()
}

// Step runs one gradient update on a minibatch and returns its mean
// cross-entropy loss before the update.
func (t *Trainer) Step(xs [][]float32, ys []int) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	m := t.model

	gradW := make([][]float64, m.NumClasses)
	for c := range gradW {
		gradW[c] = make([]float64, m.NumFeatures)
	}
	gradB := make([]float64, m.NumClasses)

	loss := 0.0
	for i, x := range xs {
		probs := m.PredictProba(x)
		y := ys[i]
		if probs[y] > 0 {
			loss -= math.Log(probs[y])
		} else {
			loss += 100
		}

		for c := 0; c < m.NumClasses; c++ {
			diff := probs[c]
			if c == y {
				diff -= 1
			}
			if diff == 0 {
				continue
			}
			gw := gradW[c]
			for j, xv := range x {
				if xv != 0 {
					gw[j] += diff * float64(xv)
				}
			}
			gradB[c] += diff
		}
	}

	lr := t.cfg.LearningRate
	scale := lr / float64(n)
	for c := 0; c < m.NumClasses; c++ {
		coef := m.Coef[c]
		gw := gradW[c]
		for j := range coef {
			coef[j] -= scale*gw[j] + lr*t.cfg.L2*coef[j]
		}
		m.Intercept[c] -= scale * gradB[c]
	}

	return loss / float64(n)
}
