package resolver

import (
	"fmt"
	"math"
)

// Classifier is a multinomial naive Bayes text classifier over sparse token
// counts. Class log priors come from training frequency; feature likelihoods
// use Laplace smoothing so unseen token/class combinations never zero out a
// posterior.
type Classifier struct {
	Alpha          float64     `json:"alpha"`
	Features       int         `json:"features"`
	ClassLogPrior  []float64   `json:"class_log_prior"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`
}

// FitClassifier trains a classifier on sparse documents X with labels y.
// Labels must be dense in [0, classes).
func FitClassifier(x []map[int]int, y []int, classes, features int, alpha float64) (*Classifier, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("no documents to fit")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("documents and labels length mismatch: %d != %d", len(x), len(y))
	}
	if alpha <= 0 {
		return nil, fmt.Errorf("smoothing alpha must be positive, got %v", alpha)
	}

	classCount := make([]float64, classes)
	featCount := make([][]float64, classes)
	featTotal := make([]float64, classes)
	for c := range featCount {
		featCount[c] = make([]float64, features)
	}

	for i, doc := range x {
		c := y[i]
		if c < 0 || c >= classes {
			return nil, fmt.Errorf("label %d out of range [0,%d)", c, classes)
		}
		classCount[c]++
		for idx, n := range doc {
			featCount[c][idx] += float64(n)
			featTotal[c] += float64(n)
		}
	}

	clf := &Classifier{
		Alpha:          alpha,
		Features:       features,
		ClassLogPrior:  make([]float64, classes),
		FeatureLogProb: make([][]float64, classes),
	}

	n := float64(len(x))
	for c := 0; c < classes; c++ {
		if classCount[c] == 0 {
			return nil, fmt.Errorf("class %d has no training documents", c)
		}
		clf.ClassLogPrior[c] = math.Log(classCount[c] / n)

		denom := featTotal[c] + alpha*float64(features)
		clf.FeatureLogProb[c] = make([]float64, features)
		for t := 0; t < features; t++ {
			clf.FeatureLogProb[c][t] = math.Log((featCount[c][t] + alpha) / denom)
		}
	}

	return clf, nil
}

// Classes returns the number of class labels
func (c *Classifier) Classes() int {
	return len(c.ClassLogPrior)
}

// Predict returns the highest-posterior class for a sparse document, along
// with the normalized posterior distribution. Ties break toward the lowest
// class index, which is stable for a fixed training run.
func (c *Classifier) Predict(doc map[int]int) (int, []float64) {
	classes := c.Classes()
	joint := make([]float64, classes)

	for cl := 0; cl < classes; cl++ {
		score := c.ClassLogPrior[cl]
		for idx, n := range doc {
			if idx < c.Features {
				score += float64(n) * c.FeatureLogProb[cl][idx]
			}
		}
		joint[cl] = score
	}

	best := 0
	for cl := 1; cl < classes; cl++ {
		if joint[cl] > joint[best] {
			best = cl
		}
	}

	return best, normalizeLogProbs(joint)
}

// normalizeLogProbs converts joint log likelihoods into a posterior
// distribution via log-sum-exp.
func normalizeLogProbs(joint []float64) []float64 {
	max := joint[0]
	for _, v := range joint[1:] {
		if v > max {
			max = v
		}
	}

	var sum float64
	post := make([]float64, len(joint))
	for i, v := range joint {
		post[i] = math.Exp(v - max)
		sum += post[i]
	}
	for i := range post {
		post[i] /= sum
	}
	return post
}
