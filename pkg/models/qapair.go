package models

import "github.com/google/uuid"

// QAPair is one generated training example. The set of pairs produced for a
// report is the closed answer universe: a trained resolver can only ever
// return answer strings that appear here.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// LastRunPlaceholder marks an answer whose text is substituted at response
// time with the run timestamp from the artifact manifest.
const LastRunPlaceholder = "LAST_RUN_PLACEHOLDER"

// PairUUID generates a deterministic UUID for a question string, used as the
// point ID in the semantic answer index so re-training upserts in place.
func PairUUID(question string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(question)).String()
}
