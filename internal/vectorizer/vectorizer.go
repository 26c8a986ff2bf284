package vectorizer

import (
	"encoding/json"
	"sort"

	"github.com/AdivarekarBhumit/Yelp-Reviews-Classification/internal/textutil"
)

// DefaultCutoff is the corpus frequency a token must strictly exceed to be
// admitted into the review vocabulary.
const DefaultCutoff = 25

// ReviewVectorizer coordinates the two vocabularies: one over review tokens
// (with the unknown fallback) and one over rating labels (without, so an
// unseen rating at inference time surfaces as an error rather than being
// silently remapped).
type ReviewVectorizer struct {
	ReviewVocab *Vocabulary
	RatingVocab *Vocabulary
}

type serializedVectorizer struct {
	ReviewVocab SerializedVocabulary `json:"review_vocab"`
	RatingVocab SerializedVocabulary `json:"rating_vocab"`
}

// FromDataset builds a ReviewVectorizer from the raw training corpus.
//
// Ratings are deduplicated and added in sorted order, so label indices depend
// only on the distinct label set. Review tokens are counted corpus-wide
// (punctuation-only tokens excluded) and those with count strictly greater
// than cutoff are added in first-occurrence order; Go map iteration order is
// randomized, so the order is tracked explicitly to keep index assignment
// reproducible across runs.
func FromDataset(reviews, ratings []string, cutoff int) *ReviewVectorizer {
	reviewVocab := NewVocabulary(true, UnkToken)
	ratingVocab := NewVocabulary(false, "")

	seen := make(map[string]bool)
	var distinct []string
	for _, rating := range ratings {
		if !seen[rating] {
			seen[rating] = true
			distinct = append(distinct, rating)
		}
	}
	sort.Strings(distinct)
	for _, rating := range distinct {
		ratingVocab.AddToken(rating)
	}

	counts := make(map[string]int)
	var order []string
	for _, review := range reviews {
		for _, token := range textutil.Tokenize(review) {
			if textutil.IsPunctuation(token) {
				continue
			}
			if _, ok := counts[token]; !ok {
				order = append(order, token)
			}
			counts[token]++
		}
	}
	for _, token := range order {
		if counts[token] > cutoff {
			reviewVocab.AddToken(token)
		}
	}

	return &ReviewVectorizer{ReviewVocab: reviewVocab, RatingVocab: ratingVocab}
}

// Vectorize converts a review into its collapsed one-hot encoding: a vector
// of length ReviewVocab.Size() with 1.0 at the position of every vocabulary
// token present in the review. Repeats are absorbed and unknown tokens all
// land on the sentinel position.
func (rv *ReviewVectorizer) Vectorize(review string) []float32 {
	oneHot := make([]float32, rv.ReviewVocab.Size())
	for _, token := range textutil.Tokenize(review) {
		if textutil.IsPunctuation(token) {
			continue
		}
		idx, err := rv.ReviewVocab.LookupToken(token)
		if err != nil {
			continue // unreachable: the review vocab has the unknown fallback
		}
		oneHot[idx] = 1
	}
	return oneHot
}

// MarshalJSON implements json.Marshaler.
func (rv *ReviewVectorizer) MarshalJSON() ([]byte, error) {
	return json.Marshal(serializedVectorizer{
		ReviewVocab: rv.ReviewVocab.ToSerializable(),
		RatingVocab: rv.RatingVocab.ToSerializable(),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (rv *ReviewVectorizer) UnmarshalJSON(data []byte) error {
	var s serializedVectorizer
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	rv.ReviewVocab = FromSerializable(s.ReviewVocab)
	rv.RatingVocab = FromSerializable(s.RatingVocab)
	return nil
}
