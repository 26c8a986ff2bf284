// Package dataset loads the labeled review corpus and serves split-aware
// minibatches to the training loop.
package dataset

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Split tags carried in the dataset's split column.
const (
	SplitTrain = "train"
	SplitVal   = "val"
	SplitTest  = "test"
)

// Default split proportions used when the CSV carries no split column.
const (
	DefaultTrainFrac = 0.7
	DefaultValFrac   = 0.15
)

// Review is one labeled record of the corpus.
type Review struct {
	Rating string
	Text   string
	Split  string
}

// Dataset holds the review corpus grouped by split tag.
type Dataset struct {
	records []Review
	bySplit map[string][]Review
}

// Load reads a review CSV. The header must name a "rating" and a "review"
// column; a "split" column is optional. Records without a split tag stay
// unassigned until AssignSplits is called.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	header := rows[0]
	ratingCol, reviewCol, splitCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "rating":
			ratingCol = i
		case "review":
			reviewCol = i
		case "split":
			splitCol = i
		}
	}
	if ratingCol < 0 || reviewCol < 0 {
		return nil, fmt.Errorf("dataset %s: header %v lacks rating/review columns", path, header)
	}

	records := make([]Review, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := Review{
			Rating: strings.TrimSpace(row[ratingCol]),
			Text:   row[reviewCol],
		}
		if splitCol >= 0 && splitCol < len(row) {
			rec.Split = strings.TrimSpace(row[splitCol])
		}
		records = append(records, rec)
	}

	d := &Dataset{records: records}
	d.regroup()
	slog.Debug("Dataset loaded", "path", path, "records", len(records),
		"train", len(d.bySplit[SplitTrain]), "val", len(d.bySplit[SplitVal]), "test", len(d.bySplit[SplitTest]))
	return d, nil
}

// LoadWithSplits loads a review CSV and assigns split tags to any records
// that lack one, in a single step.
func LoadWithSplits(path string, seed int64, trainFrac, valFrac float64) (*Dataset, error) {
	d, err := Load(path)
	if err != nil {
		return nil, err
	}
	d.AssignSplits(seed, trainFrac, valFrac)
	return d, nil
}

func (d *Dataset) regroup() {
	d.bySplit = lo.GroupBy(d.records, func(r Review) string { return r.Split })
}

// AssignSplits tags every unassigned record with train/val/test, stratified
// by rating so each split keeps the corpus label balance. Assignment is a
// deterministic function of the seed. Records already carrying a split tag
// are left alone.
func (d *Dataset) AssignSplits(seed int64, trainFrac, valFrac float64) {
	rng := rand.New(rand.NewSource(seed))

	unassigned := make(map[string][]int)
	for i, rec := range d.records {
		if rec.Split == "" {
			unassigned[rec.Rating] = append(unassigned[rec.Rating], i)
		}
	}

	// Stable order over ratings so the rng stream is reproducible.
	ratings := lo.Keys(unassigned)
	sort.Strings(ratings)

	for _, rating := range ratings {
		idxs := unassigned[rating]
		rng.Shuffle(len(idxs), func(a, b int) { idxs[a], idxs[b] = idxs[b], idxs[a] })

		nTrain := int(trainFrac * float64(len(idxs)))
		nVal := int(valFrac * float64(len(idxs)))
		for pos, i := range idxs {
			switch {
			case pos < nTrain:
				d.records[i].Split = SplitTrain
			case pos < nTrain+nVal:
				d.records[i].Split = SplitVal
			default:
				d.records[i].Split = SplitTest
			}
		}
	}
	d.regroup()
}

// Len returns the total number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Split returns the records carrying the given split tag.
func (d *Dataset) Split(tag string) []Review {
	return d.bySplit[tag]
}

// TrainingData returns the review texts and rating labels of one split, in
// dataset order.
func (d *Dataset) TrainingData(split string) (reviews, ratings []string) {
	recs := d.bySplit[split]
	reviews = lo.Map(recs, func(r Review, _ int) string { return r.Text })
	ratings = lo.Map(recs, func(r Review, _ int) string { return r.Rating })
	return reviews, ratings
}
