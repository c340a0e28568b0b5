// Package resolver maps free-text queries onto the closed answer universe of
// one training run: a bag-of-words vectorizer plus a multinomial naive Bayes
// classifier with one class per distinct answer string. Resolution always
// returns some answer from the universe, even for out-of-domain input; that
// is the accepted contract of the classification-as-answer-key design.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/runsage/runsage/pkg/models"
)

// ErrInsufficientTrainingData indicates an empty question/answer pair set.
// No model is trained or persisted in that case.
var ErrInsufficientTrainingData = errors.New("insufficient training data: no question/answer pairs")

// Resolver is a trained vectorizer + classifier + ordered answer list. The
// in-memory state is read-only after training and safe to share across
// concurrent query handlers.
type Resolver struct {
	vec     *Vectorizer
	clf     *Classifier
	answers []string
}

// Train fits a resolver over the full pair sequence. Each distinct answer
// string becomes one class label, in first-seen order, so the label space is
// in 1:1 correspondence with the distinct answers of the training set.
func Train(pairs []models.QAPair, alpha float64) (*Resolver, error) {
	if len(pairs) == 0 {
		return nil, ErrInsufficientTrainingData
	}

	labelOf := make(map[string]int)
	var answers []string
	questions := make([]string, len(pairs))
	y := make([]int, len(pairs))

	for i, p := range pairs {
		questions[i] = p.Question
		label, ok := labelOf[p.Answer]
		if !ok {
			label = len(answers)
			labelOf[p.Answer] = label
			answers = append(answers, p.Answer)
		}
		y[i] = label
	}

	vec := NewVectorizer()
	vec.Fit(questions)

	x := make([]map[int]int, len(questions))
	for i, q := range questions {
		x[i] = vec.Transform(q)
	}

	clf, err := FitClassifier(x, y, len(answers), vec.Size(), alpha)
	if err != nil {
		return nil, fmt.Errorf("failed to fit classifier: %w", err)
	}

	return &Resolver{vec: vec, clf: clf, answers: answers}, nil
}

// Resolve maps one query to the highest-posterior answer. The query passes
// through the same fixed vocabulary built at training time; unseen tokens
// are ignored. It never returns "no answer".
func (r *Resolver) Resolve(_ context.Context, query string) (*models.Resolution, error) {
	label, posterior := r.clf.Predict(r.vec.Transform(query))
	return &models.Resolution{
		Answer:     r.answers[label],
		Label:      label,
		Confidence: posterior[label],
	}, nil
}

// Answers returns the ordered closed answer universe
func (r *Resolver) Answers() []string {
	return r.answers
}

// VocabularySize returns the size of the fitted vocabulary
func (r *Resolver) VocabularySize() int {
	return r.vec.Size()
}

// State exposes the three serializable parts for the persistence boundary.
func (r *Resolver) State() (*Vectorizer, *Classifier, []string) {
	return r.vec, r.clf, r.answers
}

// FromState reassembles a resolver from persisted parts.
func FromState(vec *Vectorizer, clf *Classifier, answers []string) (*Resolver, error) {
	if vec == nil || clf == nil || len(answers) == 0 {
		return nil, fmt.Errorf("incomplete resolver state")
	}
	if clf.Classes() != len(answers) {
		return nil, fmt.Errorf("classifier has %d classes but %d answers", clf.Classes(), len(answers))
	}
	return &Resolver{vec: vec, clf: clf, answers: answers}, nil
}
