// Package classifier implements the linear rating classifier trained on
// collapsed one-hot review vectors.
package classifier

import "math"

// Model is a multinomial logistic regression over dense float32 features.
type Model struct {
	NumFeatures int         `json:"num_features"`
	NumClasses  int         `json:"num_classes"`
	Coef        [][]float64 `json:"coef"`      // [numClasses][numFeatures]
	Intercept   []float64   `json:"intercept"` // [numClasses]
}

// NewModel creates a zero-initialized model.
func NewModel(numFeatures, numClasses int) *Model {
	coef := make([][]float64, numClasses)
	for c := range coef {
		coef[c] = make([]float64, numFeatures)
	}
	return &Model{
		NumFeatures: numFeatures,
		NumClasses:  numClasses,
		Coef:        coef,
		Intercept:   make([]float64, numClasses),
	}
}

// Logits computes the raw class scores for one feature vector.
func (m *Model) Logits(x []float32) []float64 {
	logits := make([]float64, m.NumClasses)
	for c := 0; c < m.NumClasses; c++ {
		sum := m.Intercept[c]
		coef := m.Coef[c]
		for j, xv := range x {
			if xv != 0 {
				sum += coef[j] * float64(xv)
			}
		}
		logits[c] = sum
	}
	return logits
}

// PredictProba returns the softmax class probabilities for one feature vector.
func (m *Model) PredictProba(x []float32) []float64 {
	return softmax(m.Logits(x))
}

// Predict returns the most probable class index for one feature vector.
func (m *Model) Predict(x []float32) int {
	logits := m.Logits(x)
	best := 0
	for c, l := range logits {
		if l > logits[best] {
			best = c
		}
	}
	return best
}

// Loss returns the mean cross-entropy of the model on a labeled set without
// touching the weights.
func (m *Model) Loss(xs [][]float32, ys []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	loss := 0.0
	for i, x := range xs {
		probs := m.PredictProba(x)
		if probs[ys[i]] > 0 {
			loss -= math.Log(probs[ys[i]])
		} else {
			loss += 100
		}
	}
	return loss / float64(len(xs))
}

func softmax(logits []float64) []float64 {
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		if l > maxLogit {
			maxLogit = l
		}
	}
	probs := make([]float64, len(logits))
	var sum float64
	for i, l := range logits {
		probs[i] = math.Exp(l - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
