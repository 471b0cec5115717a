package rag

import (
	"github.com/yaoapp/lisa/rag/types"
)

// ParseChunkingStrategy parses a repository/pipeline strategy ({"type":"fixed","size","overlap"} or {"type":"none"})
func ParseChunkingStrategy(raw interface{}) (*types.ChunkingStrategy, error) {
	var strategy types.ChunkingStrategy
	if err := parse("chunkingStrategy", ChunkingStrategySchema, raw, &strategy); err != nil {
		return nil, err
	}
	return &strategy, nil
}

// ParseCollectionChunkingStrategy parses a collection strategy ({"type":"FIXED_SIZE","chunkSize","chunkOverlap"})
func ParseCollectionChunkingStrategy(raw interface{}) (*types.CollectionChunkingStrategy, error) {
	var strategy types.CollectionChunkingStrategy
	if err := parse("chunkingStrategy", CollectionChunkingStrategySchema, raw, &strategy); err != nil {
		return nil, err
	}
	return &strategy, nil
}

// ToCollectionChunking converts a repository strategy to the collection shape.
// "none" has no collection counterpart and yields nil.
func ToCollectionChunking(c *types.ChunkingStrategy) *types.CollectionChunkingStrategy {
	if !c.IsFixed() {
		return nil
	}

	size, overlap := DefaultChunkSize, DefaultChunkOverlap
	if c.Size != nil {
		size = *c.Size
	}
	if c.Overlap != nil {
		overlap = *c.Overlap
	}
	return &types.CollectionChunkingStrategy{
		Type:         types.CollectionChunkingFixedSize,
		ChunkSize:    size,
		ChunkOverlap: overlap,
	}
}

// ToRepositoryChunking converts a collection strategy to the repository shape
func ToRepositoryChunking(c *types.CollectionChunkingStrategy) *types.ChunkingStrategy {
	if c == nil || c.Type != types.CollectionChunkingFixedSize {
		return nil
	}
	return types.NewFixedChunking(c.ChunkSize, c.ChunkOverlap)
}
