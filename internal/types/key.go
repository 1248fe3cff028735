package types

// Key is a Zobrist hash of a position, incrementally maintained by
// internal/position on every DoMove/UndoMove/DoNullMove.
type Key uint64
