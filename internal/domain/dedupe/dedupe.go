// Package dedupe defines the duplicate policy for score submissions.
package dedupe

import "context"

// Bucket is the grouping key the duplicate policy operates on. steps_type
// is deliberately absent: two play modes on the same chart and difficulty
// share one bucket.
type Bucket struct {
	SongDir    string
	Difficulty string
	PlayerGUID string
}

// Detector decides whether an incoming score is redundant given rows
// already stored for the same bucket.
//
// The policy is permissive on purpose: a submission is redundant iff any
// stored row in the bucket carries a score greater than or equal to the
// incoming one. A strictly higher score is never redundant and gets
// appended as an additional row; earlier lower-scoring rows stay put.
type Detector interface {
	Redundant(ctx context.Context, b Bucket, score int64) (bool, error)
}
