package mode

// Mode is the search strategy.
type Mode string

// Search mode constants.
const (
	// Exact performs case-insensitive literal substring matching.
	Exact Mode = "exact"
	Fuzzy Mode = "fuzzy"
	// AI is an alias of Fuzzy: both rank by embedding similarity.
	AI Mode = "ai"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Exact || m == Fuzzy || m == AI
}

// IsSemantic reports whether the mode ranks by embeddings.
func (m Mode) IsSemantic() bool {
	return m == Fuzzy || m == AI
}
