package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadWithSplitColumn(t *testing.T) {
	req := require.New(t)
	path := writeCSV(t, `rating,review,split
positive,"great food , friendly staff",train
negative,"terrible service",train
positive,"loved it",val
negative,"never again",test
`)

	d, err := Load(path)
	req.NoError(err)
	req.Equal(4, d.Len())
	req.Len(d.Split(SplitTrain), 2)
	req.Len(d.Split(SplitVal), 1)
	req.Len(d.Split(SplitTest), 1)

	reviews, ratings := d.TrainingData(SplitTrain)
	req.Equal([]string{"great food , friendly staff", "terrible service"}, reviews)
	req.Equal([]string{"positive", "negative"}, ratings)
}

func TestLoadWithoutSplitColumn(t *testing.T) {
	req := require.New(t)
	path := writeCSV(t, `rating,review
positive,"good"
negative,"bad"
`)

	d, err := Load(path)
	req.NoError(err)
	req.Equal(2, d.Len())
	req.Empty(d.Split(SplitTrain))
}

func TestLoadWithSplits(t *testing.T) {
	req := require.New(t)
	path := writeCSV(t, `rating,review,split
positive,"pinned",test
positive,"floating",
negative,"also floating",
`)

	d, err := LoadWithSplits(path, 1, 1.0, 0)
	req.NoError(err)
	req.Len(d.Split(SplitTrain), 2)
	req.Len(d.Split(SplitTest), 1)
	req.Equal("pinned", d.Split(SplitTest)[0].Text)
}

func TestLoadMissingColumns(t *testing.T) {
	path := writeCSV(t, "stars,text\n5,nice\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestAssignSplits(t *testing.T) {
	req := require.New(t)
	d := &Dataset{}
	for i := 0; i < 50; i++ {
		d.records = append(d.records, Review{Rating: "positive", Text: "p"})
		d.records = append(d.records, Review{Rating: "negative", Text: "n"})
	}
	d.regroup()

	d.AssignSplits(1337, DefaultTrainFrac, DefaultValFrac)

	req.Len(d.Split(SplitTrain), 70)
	req.Len(d.Split(SplitVal), 14)
	req.Len(d.Split(SplitTest), 16)

	// Stratified: each split keeps the label balance.
	for _, tag := range []string{SplitTrain, SplitVal, SplitTest} {
		pos := 0
		for _, rec := range d.Split(tag) {
			if rec.Rating == "positive" {
				pos++
			}
		}
		req.Equal(len(d.Split(tag))/2, pos, "split %s unbalanced", tag)
	}
}

func TestAssignSplitsDeterministic(t *testing.T) {
	req := require.New(t)
	build := func() *Dataset {
		d := &Dataset{}
		for i := 0; i < 20; i++ {
			d.records = append(d.records, Review{Rating: "positive", Text: string(rune('a' + i))})
		}
		d.regroup()
		d.AssignSplits(7, DefaultTrainFrac, DefaultValFrac)
		return d
	}

	a, b := build(), build()
	for i := range a.records {
		req.Equal(a.records[i].Split, b.records[i].Split)
	}
}

func TestAssignSplitsKeepsExistingTags(t *testing.T) {
	req := require.New(t)
	d := &Dataset{records: []Review{
		{Rating: "positive", Text: "pinned", Split: SplitTest},
		{Rating: "positive", Text: "floating"},
	}}
	d.regroup()
	d.AssignSplits(1, 1.0, 0)

	req.Equal(SplitTest, d.records[0].Split)
	req.Equal(SplitTrain, d.records[1].Split)
}

func TestBatches(t *testing.T) {
	req := require.New(t)
	d := &Dataset{}
	for i := 0; i < 10; i++ {
		d.records = append(d.records, Review{Rating: "positive", Text: string(rune('a' + i)), Split: SplitTrain})
	}
	d.regroup()

	batches := d.Batches(SplitTrain, 3, false, false, 0)
	req.Len(batches, 4)
	req.Len(batches[3], 1)

	dropped := d.Batches(SplitTrain, 3, false, true, 0)
	req.Len(dropped, 3)
	for _, b := range dropped {
		req.Len(b, 3)
	}

	req.Equal(3, d.NumBatches(SplitTrain, 3))
}

func TestBatchesShuffleDeterministic(t *testing.T) {
	req := require.New(t)
	d := &Dataset{}
	for i := 0; i < 16; i++ {
		d.records = append(d.records, Review{Rating: "positive", Text: string(rune('a' + i)), Split: SplitTrain})
	}
	d.regroup()

	a := d.Batches(SplitTrain, 4, true, true, 42)
	b := d.Batches(SplitTrain, 4, true, true, 42)
	req.Equal(a, b)

	c := d.Batches(SplitTrain, 4, true, true, 43)
	req.NotEqual(a, c)
}
