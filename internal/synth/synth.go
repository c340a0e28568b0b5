// Package synth turns parsed test cases into the question/answer pairs the
// resolver is trained on. Generation is deterministic and side-effect-free;
// the produced pair set is the closed answer universe for one training run.
package synth

import (
	"fmt"
	"strings"

	"github.com/runsage/runsage/pkg/models"
)

// Generate produces the full QAPair sequence for a report. Every test case
// contributes one answer string reachable through three question phrasings;
// aggregate pairs are recomputed from the full sequence on every call.
func Generate(cases []models.TestCase) []models.QAPair {
	pairs := make([]models.QAPair, 0, len(cases)*3+6)

	for _, tc := range cases {
		answer := fmt.Sprintf("The test %s in %s %s.", tc.Title, tc.File, tc.Status)
		pairs = append(pairs,
			models.QAPair{Question: fmt.Sprintf("what was the result of %s", tc.Title), Answer: answer},
			models.QAPair{Question: fmt.Sprintf("did %s pass", tc.Title), Answer: answer},
			models.QAPair{Question: fmt.Sprintf("did %s fail", tc.Title), Answer: answer},
		)
	}

	sum := models.Summarize(cases)
	pairs = append(pairs,
		models.QAPair{
			Question: "how many tests failed",
			Answer:   fmt.Sprintf("%d of %d tests failed.", sum.Failed, sum.Total),
		},
		models.QAPair{
			Question: "how many tests passed",
			Answer:   fmt.Sprintf("%d of %d tests passed.", sum.Passed, sum.Total),
		},
		models.QAPair{
			Question: "how many tests were skipped",
			Answer:   fmt.Sprintf("%d of %d tests were skipped.", sum.Skipped, sum.Total),
		},
		models.QAPair{
			Question: "list the failed tests",
			Answer:   failedAnswer(cases),
		},
		models.QAPair{
			Question: "which tests were flaky",
			Answer:   flakyAnswer(cases),
		},
		models.QAPair{
			Question: "when did the last test run",
			Answer:   models.LastRunPlaceholder,
		},
	)

	return pairs
}

func failedAnswer(cases []models.TestCase) string {
	var failed []string
	for _, tc := range cases {
		if models.IsFailStatus(tc.Status) {
			failed = append(failed, tc.Title)
		}
	}
	if len(failed) == 0 {
		return "No tests failed."
	}
	return fmt.Sprintf("The failed tests are: %s.", strings.Join(failed, ", "))
}

func flakyAnswer(cases []models.TestCase) string {
	var flaky []string
	for _, tc := range cases {
		if tc.Flaky {
			flaky = append(flaky, tc.Title)
		}
	}
	if len(flaky) == 0 {
		return "No flaky tests were detected."
	}
	return fmt.Sprintf("The flaky tests are: %s.", strings.Join(flaky, ", "))
}
