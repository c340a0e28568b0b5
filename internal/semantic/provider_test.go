package semantic

import "testing"

func TestPrepareQuestionText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Did Test Login PASS", "did test login pass"},
		{"trims and collapses whitespace", "  how many\ttests   failed \n", "how many tests failed"},
		{"plain text unchanged", "list the failed tests", "list the failed tests"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrepareQuestionText(tt.input); got != tt.want {
				t.Errorf("PrepareQuestionText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrepareQuestionTextTruncates(t *testing.T) {
	long := make([]byte, 10000)
	for i := range long {
		long[i] = 'a'
	}

	got := PrepareQuestionText(string(long))
	if len(got) > 6000 {
		t.Errorf("len = %d, want <= 6000", len(got))
	}
}
