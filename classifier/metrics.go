package classifier

import "sort"

// Confusion counts predictions keyed by true label then predicted label.
func Confusion(trueLabels, predLabels []string) map[string]map[string]int {
	confusion := make(map[string]map[string]int)
	for i, tl := range trueLabels {
		if confusion[tl] == nil {
			confusion[tl] = make(map[string]int)
		}
		confusion[tl][predLabels[i]]++
	}
	return confusion
}

// Classes returns the sorted union of true and predicted labels in a
// confusion matrix.
func Classes(confusion map[string]map[string]int) []string {
	set := make(map[string]bool)
	for tl, row := range confusion {
		set[tl] = true
		for pl := range row {
			set[pl] = true
		}
	}
	classes := make([]string, 0, len(set))
	for c := range set {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	return classes
}

// Accuracy returns the overall accuracy with its raw counts.
func Accuracy(confusion map[string]map[string]int) (acc float64, correct, total int) {
	for tl, row := range confusion {
		for pl, n := range row {
			total += n
			if tl == pl {
				correct += n
			}
		}
	}
	if total > 0 {
		acc = float64(correct) / float64(total)
	}
	return acc, correct, total
}

// PrecisionRecallF1 computes per-class precision, recall and F1 from a
// confusion matrix.
func PrecisionRecallF1(confusion map[string]map[string]int) (precision, recall, f1 map[string]float64) {
	precision = make(map[string]float64)
	recall = make(map[string]float64)
	f1 = make(map[string]float64)

	for _, cls := range Classes(confusion) {
		tp := confusion[cls][cls]
		fn := 0
		for _, n := range confusion[cls] {
			fn += n
		}
		fn -= tp
		fp := 0
		for tl, row := range confusion {
			if tl != cls {
				fp += row[cls]
			}
		}

		if tp+fp > 0 {
			precision[cls] = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			recall[cls] = float64(tp) / float64(tp+fn)
		}
		if precision[cls]+recall[cls] > 0 {
			f1[cls] = 2 * precision[cls] * recall[cls] / (precision[cls] + recall[cls])
		}
	}
	return precision, recall, f1
}

// MacroF1 averages F1 over classes with equal weight.
func MacroF1(f1 map[string]float64) float64 {
	if len(f1) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range f1 {
		sum += v
	}
	return sum / float64(len(f1))
}

// WeightedF1 averages F1 over classes weighted by support.
func WeightedF1(confusion map[string]map[string]int, f1 map[string]float64) float64 {
	total := 0
	weighted := 0.0
	for tl, row := range confusion {
		support := 0
		for _, n := range row {
			support += n
		}
		total += support
		weighted += f1[tl] * float64(support)
	}
	if total == 0 {
		return 0
	}
	return weighted / float64(total)
}
