package model

// SequenceCounter holds the last-issued integer ID for a named sequence.
type SequenceCounter struct {
	Name  string `bson:"_id"`
	Value int64  `bson:"sequence_value"`
}
