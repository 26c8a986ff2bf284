package classifier

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroModelPredictProba(t *testing.T) {
	m := NewModel(4, 3)
	probs := m.PredictProba([]float32{1, 0, 1, 0})

	require.Len(t, probs, 3)
	sum := 0.0
	for _, p := range probs {
		sum += p
		assert.InDelta(t, 1.0/3.0, p, 1e-9)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestPredictArgmax(t *testing.T) {
	m := NewModel(2, 3)
	m.Coef[2][0] = 5.0
	m.Coef[1][1] = 5.0

	assert.Equal(t, 2, m.Predict([]float32{1, 0}))
	assert.Equal(t, 1, m.Predict([]float32{0, 1}))
}

func trainToy(t *testing.T, steps int) *Trainer {
	t.Helper()
	cfg := DefaultTrainConfig()
	cfg.LearningRate = 0.5
	tr := NewTrainer(4, 2, cfg)

	xs := [][]float32{
		{1, 0, 1, 0},
		{1, 0, 0, 1},
		{0, 1, 1, 0},
		{0, 1, 0, 1},
	}
	ys := []int{0, 0, 1, 1}
	for i := 0; i < steps; i++ {
		tr.Step(xs, ys)
	}
	return tr
}

func TestTrainerLearnsSeparableData(t *testing.T) {
	tr := trainToy(t, 200)
	m := tr.Model()

	assert.Equal(t, 0, m.Predict([]float32{1, 0, 0, 0}))
	assert.Equal(t, 1, m.Predict([]float32{0, 1, 0, 0}))
	assert.Equal(t, 0, m.Predict([]float32{1, 0, 1, 1}))
	assert.Equal(t, 1, m.Predict([]float32{0, 1, 1, 1}))
}

func TestTrainSeparableData(t *testing.T) {
	cfg := DefaultTrainConfig()
	cfg.LearningRate = 0.5
	cfg.Epochs = 100
	cfg.BatchSize = 2

	xs := [][]float32{
		{1, 0, 1, 0},
		{1, 0, 0, 1},
		{0, 1, 1, 0},
		{0, 1, 0, 1},
	}
	ys := []int{0, 0, 1, 1}
	m := Train(xs, ys, cfg)

	require.Equal(t, 4, m.NumFeatures)
	require.Equal(t, 2, m.NumClasses)
	assert.Equal(t, 0, m.Predict([]float32{1, 0, 0, 0}))
	assert.Equal(t, 1, m.Predict([]float32{0, 1, 0, 0}))
	assert.Less(t, m.Loss(xs, ys), math.Log(2))
}

func TestTrainEmptySet(t *testing.T) {
	m := Train(nil, nil, DefaultTrainConfig())
	assert.Zero(t, m.NumFeatures)
	assert.Zero(t, m.NumClasses)
}

func TestTrainerLossDecreases(t *testing.T) {
	cfg := DefaultTrainConfig()
	cfg.LearningRate = 0.5
	tr := NewTrainer(2, 2, cfg)

	xs := [][]float32{{1, 0}, {0, 1}}
	ys := []int{0, 1}

	first := tr.Step(xs, ys)
	var last float64
	for i := 0; i < 50; i++ {
		last = tr.Step(xs, ys)
	}
	assert.Less(t, last, first)
	assert.InDelta(t, math.Log(2), first, 1e-9) // zero weights start at uniform
}

func TestModelLoss(t *testing.T) {
	m := NewModel(2, 2)
	xs := [][]float32{{1, 0}, {0, 1}}
	ys := []int{0, 1}
	assert.InDelta(t, math.Log(2), m.Loss(xs, ys), 1e-9)
	assert.Zero(t, m.Loss(nil, nil))
}

func TestModelJSONRoundTrip(t *testing.T) {
	req := require.New(t)
	tr := trainToy(t, 50)
	m := tr.Model()

	data, err := json.Marshal(m)
	req.NoError(err)
	var restored Model
	req.NoError(json.Unmarshal(data, &restored))

	req.Equal(m.NumFeatures, restored.NumFeatures)
	req.Equal(m.NumClasses, restored.NumClasses)
	x := []float32{1, 0, 1, 0}
	req.Equal(m.Predict(x), restored.Predict(x))
	req.InDeltaSlice(m.PredictProba(x), restored.PredictProba(x), 1e-12)
}

func TestConfusionAndAccuracy(t *testing.T) {
	trueLabels := []string{"pos", "pos", "neg", "neg", "neg"}
	predLabels := []string{"pos", "neg", "neg", "neg", "pos"}

	confusion := Confusion(trueLabels, predLabels)
	assert.Equal(t, 1, confusion["pos"]["pos"])
	assert.Equal(t, 1, confusion["pos"]["neg"])
	assert.Equal(t, 2, confusion["neg"]["neg"])
	assert.Equal(t, 1, confusion["neg"]["pos"])

	acc, correct, total := Accuracy(confusion)
	assert.Equal(t, 3, correct)
	assert.Equal(t, 5, total)
	assert.InDelta(t, 0.6, acc, 1e-9)

	assert.Equal(t, []string{"neg", "pos"}, Classes(confusion))
}

func TestPrecisionRecallF1(t *testing.T) {
	confusion := Confusion(
		[]string{"pos", "pos", "neg", "neg", "neg"},
		[]string{"pos", "neg", "neg", "neg", "pos"},
	)
	precision, recall, f1 := PrecisionRecallF1(confusion)

	assert.InDelta(t, 0.5, precision["pos"], 1e-9)  // 1 of 2 predicted pos
	assert.InDelta(t, 0.5, recall["pos"], 1e-9)     // 1 of 2 true pos
	assert.InDelta(t, 0.5, f1["pos"], 1e-9)
	assert.InDelta(t, 2.0/3.0, precision["neg"], 1e-9)
	assert.InDelta(t, 2.0/3.0, recall["neg"], 1e-9)

	assert.InDelta(t, (0.5+2.0/3.0)/2, MacroF1(f1), 1e-9)
	assert.InDelta(t, (0.5*2+2.0/3.0*3)/5, WeightedF1(confusion, f1), 1e-9)
}
