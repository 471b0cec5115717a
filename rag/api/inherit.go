package api

import (
	"github.com/yaoapp/lisa/rag"
	"github.com/yaoapp/lisa/rag/types"
)

// ResolveCollection the effective configuration of a collection: omitted chunking strategy,
// embedding model and empty or absent allowedGroups come from the repository, metadata is merged.
// Neither argument is modified.
func ResolveCollection(child types.RagCollectionConfig, parent types.RagRepositoryConfig) types.RagCollectionConfig {
	res := child

	if res.ChunkingStrategy == nil {
		res.ChunkingStrategy = rag.ToCollectionChunking(parent.ChunkingStrategy)
	} else {
		strategy := *child.ChunkingStrategy
		res.ChunkingStrategy = &strategy
	}

	if res.EmbeddingModel == "" {
		res.EmbeddingModel = parent.EmbeddingModelID
	}

	res.AllowedGroups = copyStrings(EffectiveAllowedGroups(child, parent))

	res.Metadata = MergeMetadata(parent.Metadata, child.Metadata)
	res.Pipelines = append([]types.PipelineConfig{}, child.Pipelines...)
	return res
}

// MergeMetadata tags are unioned in order without duplicates, custom fields of the child
// win on key conflict. Returns nil when both are nil.
func MergeMetadata(parent, child *types.Metadata) *types.Metadata {
	if parent == nil && child == nil {
		return nil
	}

	res := &types.Metadata{Tags: []string{}, CustomFields: map[string]interface{}{}}
	for _, m := range []*types.Metadata{parent, child} {
		if m == nil {
			continue
		}
		for _, tag := range m.Tags {
			if !contains(res.Tags, tag) {
				res.Tags = append(res.Tags, tag)
			}
		}
		for key, value := range m.CustomFields {
			res.CustomFields[key] = value
		}
	}
	return res
}

// EffectiveAllowedGroups the groups that may access a collection. An empty or absent child
// list inherits the repository's; an empty result means public.
func EffectiveAllowedGroups(child types.RagCollectionConfig, parent types.RagRepositoryConfig) []string {
	if len(child.AllowedGroups) > 0 {
		return child.AllowedGroups
	}
	return parent.AllowedGroups
}

func copyStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string{}, values...)
}
