package types

// ChunkingStrategy the repository/pipeline chunking shape.
//
// Wire form: {"type":"fixed","size":512,"overlap":51} or {"type":"none"}.
// Field and enum names differ from CollectionChunkingStrategy on purpose; consumers key on
// the exact names, so the two shapes are converted explicitly and never unified.
type ChunkingStrategy struct {
	Type    ChunkingStrategyType `json:"type" yaml:"type" validate:"required,oneof=fixed none"`
	Size    *int                 `json:"size,omitempty" yaml:"size,omitempty"`
	Overlap *int                 `json:"overlap,omitempty" yaml:"overlap,omitempty"`
}

// NewFixedChunking a fixed size strategy
func NewFixedChunking(size, overlap int) *ChunkingStrategy {
	return &ChunkingStrategy{Type: ChunkingFixed, Size: &size, Overlap: &overlap}
}

// NewNoneChunking a strategy that leaves documents unchunked
func NewNoneChunking() *ChunkingStrategy {
	return &ChunkingStrategy{Type: ChunkingNone}
}

// IsFixed fixed size strategy
func (c *ChunkingStrategy) IsFixed() bool {
	return c != nil && c.Type == ChunkingFixed
}

// SizeOrZero the chunk size, 0 when unset
func (c *ChunkingStrategy) SizeOrZero() int {
	if c == nil || c.Size == nil {
		return 0
	}
	return *c.Size
}

// OverlapOrZero the chunk overlap, 0 when unset
func (c *ChunkingStrategy) OverlapOrZero() int {
	if c == nil || c.Overlap == nil {
		return 0
	}
	return *c.Overlap
}

// CollectionChunkingStrategy the collection chunking shape.
//
// Wire form: {"type":"FIXED_SIZE","chunkSize":512,"chunkOverlap":51}
type CollectionChunkingStrategy struct {
	Type         CollectionChunkingType `json:"type" yaml:"type" validate:"required,oneof=FIXED_SIZE"`
	ChunkSize    int                    `json:"chunkSize" yaml:"chunkSize" validate:"min=100,max=10000"`
	ChunkOverlap int                    `json:"chunkOverlap" yaml:"chunkOverlap" validate:"min=0"`
}
