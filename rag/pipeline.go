package rag

import (
	"github.com/spf13/cast"
	"github.com/yaoapp/lisa/rag/types"
)

// ParsePipeline parses a pipeline, applying defaults
func ParsePipeline(raw interface{}) (*types.PipelineConfig, error) {
	var pipeline types.PipelineConfig
	if err := parse("pipeline", PipelineSchema, raw, &pipeline); err != nil {
		return nil, err
	}
	return &pipeline, nil
}

// EffectiveChunkingStrategy the pipeline strategy, or a fixed strategy built from the
// legacy chunkSize/chunkOverlap fields
func EffectiveChunkingStrategy(p types.PipelineConfig) *types.ChunkingStrategy {
	if p.ChunkingStrategy != nil {
		return p.ChunkingStrategy
	}

	if p.ChunkSize == 0 {
		return types.NewFixedChunking(DefaultChunkSize, DefaultChunkOverlap)
	}
	return types.NewFixedChunking(p.ChunkSize, p.ChunkOverlap)
}

// MigratePipeline synthesizes chunkingStrategy from the legacy chunkSize/chunkOverlap
// fields of a stored pipeline. Loose numeric strings are coerced. The input is not modified.
func MigratePipeline(raw map[string]interface{}) map[string]interface{} {
	res := make(map[string]interface{}, len(raw)+1)
	for k, v := range raw {
		res[k] = v
	}

	if strategy, has := raw["chunkingStrategy"]; has && strategy != nil {
		return res
	}

	sizeRaw, overlapRaw := raw["chunkSize"], raw["chunkOverlap"]
	if sizeRaw == nil && overlapRaw == nil {
		return res
	}

	size, overlap := DefaultChunkSize, DefaultChunkOverlap
	if n, err := cast.ToIntE(sizeRaw); sizeRaw != nil && err == nil {
		size = n
		res["chunkSize"] = n
	}
	if n, err := cast.ToIntE(overlapRaw); overlapRaw != nil && err == nil {
		overlap = n
		res["chunkOverlap"] = n
	}

	res["chunkingStrategy"] = map[string]interface{}{
		"type":    string(types.ChunkingFixed),
		"size":    size,
		"overlap": overlap,
	}
	return res
}

// PipelineIndex pipelines by identity key
func PipelineIndex(pipelines []types.PipelineConfig) map[string]types.PipelineConfig {
	index := make(map[string]types.PipelineConfig, len(pipelines))
	for _, p := range pipelines {
		index[p.Key()] = p
	}
	return index
}
