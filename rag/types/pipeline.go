package types

import "strings"

// PipelineConfig an automated S3-triggered ingestion pipeline
type PipelineConfig struct {
	ChunkSize        int               `json:"chunkSize" yaml:"chunkSize"`                                     // Legacy, used when ChunkingStrategy is nil. Default: 512
	ChunkOverlap     int               `json:"chunkOverlap" yaml:"chunkOverlap"`                               // Legacy, used when ChunkingStrategy is nil. Default: 51
	ChunkingStrategy *ChunkingStrategy `json:"chunkingStrategy,omitempty" yaml:"chunkingStrategy,omitempty"`   // Optional
	EmbeddingModel   string            `json:"embeddingModel,omitempty" yaml:"embeddingModel,omitempty"`       // Optional
	CollectionID     string            `json:"collectionId,omitempty" yaml:"collectionId,omitempty"`           // Optional, target collection
	S3Bucket         string            `json:"s3Bucket" yaml:"s3Bucket" validate:"required"`                   // Required
	S3Prefix         string            `json:"s3Prefix" yaml:"s3Prefix" validate:"s3norel,s3noleading,s3key"` // Default: ""
	Trigger          PipelineTrigger   `json:"trigger" yaml:"trigger" validate:"oneof=daily event"`            // Default: event
	AutoRemove       bool              `json:"autoRemove" yaml:"autoRemove"`                                   // Default: true
}

// Key the identity of a pipeline: collectionId:s3Bucket:s3Prefix
func (p PipelineConfig) Key() string {
	return strings.Join([]string{p.CollectionID, p.S3Bucket, p.S3Prefix}, ":")
}

// PipelineLockedFields fields that cannot change once the pipeline is deployed.
// Changing a key field makes a different pipeline.
var PipelineLockedFields = []string{"trigger", "autoRemove"}
