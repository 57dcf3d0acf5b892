package domain

// KeyPrefix namespaces every key lexsearch writes to a shared KV store.
const KeyPrefix = "lexsearch:"

// VectorConfig holds internal vectorization settings, not exposed to clients.
type VectorConfig struct {
	Model          string
	Dimensions     int
	MaxInputTokens int
	CharsPerToken  int
}

// MaxInputChars is the character budget an embedding input is cut to.
func (c VectorConfig) MaxInputChars() int {
	return c.MaxInputTokens * c.CharsPerToken
}

// DefaultVectorConfig returns the default configuration tuned for text-embedding-3-small.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Model:          "text-embedding-3-small",
		Dimensions:     1536,
		MaxInputTokens: 8000,
		CharsPerToken:  4,
	}
}
