package resolver

import (
	"math"
	"testing"
)

// fitSmall trains a classifier over three tiny documents in two classes.
func fitSmall(t *testing.T) (*Classifier, *Vectorizer) {
	t.Helper()

	v := NewVectorizer()
	docs := []string{
		"how many tests failed",
		"how many tests passed",
		"list the failed tests",
	}
	y := []int{0, 1, 0}
	v.Fit(docs)

	x := make([]map[int]int, len(docs))
	for i, d := range docs {
		x[i] = v.Transform(d)
	}

	clf, err := FitClassifier(x, y, 2, v.Size(), 1.0)
	if err != nil {
		t.Fatalf("FitClassifier() error = %v", err)
	}
	return clf, v
}

func TestClassifierPredict(t *testing.T) {
	clf, v := fitSmall(t)

	label, _ := clf.Predict(v.Transform("how many tests failed"))
	if label != 0 {
		t.Errorf("label = %d, want 0", label)
	}

	label, _ = clf.Predict(v.Transform("how many tests passed"))
	if label != 1 {
		t.Errorf("label = %d, want 1", label)
	}
}

func TestClassifierPosteriorNormalized(t *testing.T) {
	clf, v := fitSmall(t)

	_, post := clf.Predict(v.Transform("failed tests"))
	var sum float64
	for _, p := range post {
		if p < 0 || p > 1 {
			t.Errorf("posterior out of range: %v", post)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("posterior sum = %v, want 1", sum)
	}
}

func TestClassifierEmptyDocumentFallsBackToPrior(t *testing.T) {
	clf, _ := fitSmall(t)

	// No known tokens: the prior decides. Class 0 has two documents.
	label, _ := clf.Predict(map[int]int{})
	if label != 0 {
		t.Errorf("label = %d, want majority class 0", label)
	}
}

func TestClassifierDeterministicTieBreak(t *testing.T) {
	v := NewVectorizer()
	docs := []string{"alpha query", "beta query"}
	v.Fit(docs)

	x := []map[int]int{v.Transform(docs[0]), v.Transform(docs[1])}
	clf, err := FitClassifier(x, []int{0, 1}, 2, v.Size(), 1.0)
	if err != nil {
		t.Fatalf("FitClassifier() error = %v", err)
	}

	// "query" is symmetric between the classes; the tie must break low.
	for i := 0; i < 10; i++ {
		label, _ := clf.Predict(v.Transform("query"))
		if label != 0 {
			t.Fatalf("tie break not deterministic: got %d", label)
		}
	}
}

func TestFitClassifierErrors(t *testing.T) {
	v := NewVectorizer()
	v.Fit([]string{"one doc"})
	x := []map[int]int{v.Transform("one doc")}

	if _, err := FitClassifier(nil, nil, 0, 0, 1.0); err == nil {
		t.Error("empty input should fail")
	}
	if _, err := FitClassifier(x, []int{0, 1}, 2, v.Size(), 1.0); err == nil {
		t.Error("length mismatch should fail")
	}
	if _, err := FitClassifier(x, []int{0}, 1, v.Size(), 0); err == nil {
		t.Error("non-positive alpha should fail")
	}
	if _, err := FitClassifier(x, []int{2}, 3, v.Size(), 1.0); err == nil {
		t.Error("class without documents should fail")
	}
}
