// Package reviews predicts Yelp review sentiment ratings.
//
// It provides a bag-of-words pipeline: a vocabulary/vectorizer pair built
// from the labeled review corpus and a linear classifier over the resulting
// collapsed one-hot vectors.
//
//	c, _ := reviews.New()
//	rating, _ := c.Predict("great food and friendly staff !")
//	fmt.Println(rating) // "positive"
package reviews

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AdivarekarBhumit/Yelp-Reviews-Classification/classifier"
	"github.com/AdivarekarBhumit/Yelp-Reviews-Classification/internal/textutil"
	"github.com/AdivarekarBhumit/Yelp-Reviews-Classification/internal/vectorizer"
)

// Classifier bundles the fitted vectorizer with the trained rating model.
type Classifier struct {
	vec   *vectorizer.ReviewVectorizer
	model *classifier.Model
}

type modelFile struct {
	Vectorizer *vectorizer.ReviewVectorizer `json:"vectorizer"`
	Model      *classifier.Model            `json:"model"`
}

// New loads the classifier from "model.json", searching the current directory
// and parent directories up to the module root (where go.mod lives).
func New() (*Classifier, error) {
	path, err := findModel("model.json")
	if err != nil {
		return nil, fmt.Errorf("reviews: %w", err)
	}
	return Load(path)
}

func findModel(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		// Stop at module root
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("model.json not found")
}

// Load loads a trained classifier from a model file.
func Load(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reviews: %w", err)
	}
	var mf modelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("reviews: parse %s: %w", path, err)
	}
	if mf.Vectorizer == nil || mf.Model == nil {
		return nil, fmt.Errorf("reviews: %s is not a complete model file", path)
	}
	return &Classifier{vec: mf.Vectorizer, model: mf.Model}, nil
}

// Save writes the classifier to a model file.
func (c *Classifier) Save(path string) error {
	if c.vec == nil || c.model == nil {
		return fmt.Errorf("reviews: classifier not initialized")
	}
	data, err := json.Marshal(modelFile{Vectorizer: c.vec, Model: c.model})
	if err != nil {
		return fmt.Errorf("reviews: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("reviews: %w", err)
	}
	return nil
}

// Vectorizer exposes the fitted vectorizer.
func (c *Classifier) Vectorizer() *vectorizer.ReviewVectorizer {
	return c.vec
}

// Predict returns the most probable rating for a raw review.
func (c *Classifier) Predict(review string) (string, error) {
	if c.vec == nil || c.model == nil {
		return "", fmt.Errorf("reviews: classifier not initialized")
	}
	x := c.vec.Vectorize(textutil.CleanReview(review))
	rating, err := c.vec.RatingVocab.LookupIndex(c.model.Predict(x))
	if err != nil {
		return "", fmt.Errorf("reviews: %w", err)
	}
	return rating, nil
}

// PredictProba returns the probability of every rating for a raw review.
func (c *Classifier) PredictProba(review string) (map[string]float64, error) {
	if c.vec == nil || c.model == nil {
		return nil, fmt.Errorf("reviews: classifier not initialized")
	}
	x := c.vec.Vectorize(textutil.CleanReview(review))
	probs := c.model.PredictProba(x)

	result := make(map[string]float64, len(probs))
	for i, p := range probs {
		rating, err := c.vec.RatingVocab.LookupIndex(i)
		if err != nil {
			return nil, fmt.Errorf("reviews: %w", err)
		}
		result[rating] = p
	}
	return result, nil
}
