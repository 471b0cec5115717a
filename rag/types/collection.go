package types

import "time"

// RagCollectionConfig a named, independently access-controlled subdivision of a repository.
// Omitted ChunkingStrategy, EmbeddingModel, AllowedGroups and Metadata inherit from the
// parent repository; see rag/api.ResolveCollection.
type RagCollectionConfig struct {
	CollectionID          string                      `json:"collectionId" yaml:"collectionId" validate:"required,uuid"`
	RepositoryID          string                      `json:"repositoryId" yaml:"repositoryId" validate:"required"`
	Name                  string                      `json:"name,omitempty" yaml:"name,omitempty" validate:"omitempty,max=100,collname"`
	Description           string                      `json:"description,omitempty" yaml:"description,omitempty"`
	ChunkingStrategy      *CollectionChunkingStrategy `json:"chunkingStrategy,omitempty" yaml:"chunkingStrategy,omitempty"`
	AllowChunkingOverride bool                        `json:"allowChunkingOverride" yaml:"allowChunkingOverride"`
	Metadata              *Metadata                   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	AllowedGroups         []string                    `json:"allowedGroups" yaml:"allowedGroups" validate:"dive,required"`
	EmbeddingModel        string                      `json:"embeddingModel,omitempty" yaml:"embeddingModel,omitempty"`
	CreatedBy             string                      `json:"createdBy" yaml:"createdBy" validate:"required"`
	CreatedAt             time.Time                   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt             time.Time                   `json:"updatedAt" yaml:"updatedAt"`
	Status                CollectionStatus            `json:"status" yaml:"status" validate:"oneof=ACTIVE ARCHIVED DELETED"`
	Private               bool                        `json:"private" yaml:"private"` // Creator and admins only
	Pipelines             []PipelineConfig            `json:"pipelines" yaml:"pipelines" validate:"dive"`
}

// CollectionImmutableFields fields that cannot change after creation
var CollectionImmutableFields = []string{"collectionId", "repositoryId", "embeddingModel", "createdBy", "createdAt"}
