package types

import "strings"

// RepositoryType the backing vector store of a repository
type RepositoryType string

const (
	// RepositoryTypeOpenSearch OpenSearch domain
	RepositoryTypeOpenSearch RepositoryType = "opensearch"
	// RepositoryTypePGVector managed Postgres with pgvector
	RepositoryTypePGVector RepositoryType = "pgvector"
	// RepositoryTypeBedrockKnowledgeBase managed knowledge base
	RepositoryTypeBedrockKnowledgeBase RepositoryType = "bedrock_knowledge_base"
)

// RepositoryTypes all repository types in display order
var RepositoryTypes = []RepositoryType{
	RepositoryTypeOpenSearch,
	RepositoryTypePGVector,
	RepositoryTypeBedrockKnowledgeBase,
}

// ParseRepositoryType accepts both the wire value and the enum name
// ("pgvector", "PGVECTOR"). Unknown input is returned unchanged so validation can report it.
func ParseRepositoryType(s string) RepositoryType {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, t := range RepositoryTypes {
		if string(t) == lower {
			return t
		}
	}
	return RepositoryType(s)
}

// UnmarshalText normalizes enum names to wire values
func (t *RepositoryType) UnmarshalText(text []byte) error {
	*t = ParseRepositoryType(string(text))
	return nil
}

// VectorStoreStatus the deployment status of a repository
type VectorStoreStatus string

const (
	StatusCreateInProgress                VectorStoreStatus = "CREATE_IN_PROGRESS"
	StatusCreateComplete                  VectorStoreStatus = "CREATE_COMPLETE"
	StatusCreateFailed                    VectorStoreStatus = "CREATE_FAILED"
	StatusUpdateInProgress                VectorStoreStatus = "UPDATE_IN_PROGRESS"
	StatusUpdateComplete                  VectorStoreStatus = "UPDATE_COMPLETE"
	StatusUpdateCompleteCleanupInProgress VectorStoreStatus = "UPDATE_COMPLETE_CLEANUP_IN_PROGRESS"
	StatusDeleteInProgress                VectorStoreStatus = "DELETE_IN_PROGRESS"
	StatusDeleteFailed                    VectorStoreStatus = "DELETE_FAILED"
	StatusUnknown                         VectorStoreStatus = "UNKNOWN"
)

// VectorStoreStatuses all statuses
var VectorStoreStatuses = []VectorStoreStatus{
	StatusCreateInProgress,
	StatusCreateComplete,
	StatusCreateFailed,
	StatusUpdateInProgress,
	StatusUpdateComplete,
	StatusUpdateCompleteCleanupInProgress,
	StatusDeleteInProgress,
	StatusDeleteFailed,
	StatusUnknown,
}

// IsTerminal reports whether polling can stop: any *_COMPLETE or *_FAILED status.
// UPDATE_COMPLETE_CLEANUP_IN_PROGRESS is still in progress.
func (s VectorStoreStatus) IsTerminal() bool {
	if s == StatusUpdateCompleteCleanupInProgress {
		return false
	}
	return strings.HasSuffix(string(s), "_COMPLETE") || s.IsFailed()
}

// IsFailed reports a *_FAILED status
func (s VectorStoreStatus) IsFailed() bool {
	return strings.HasSuffix(string(s), "_FAILED")
}

// CollectionStatus the lifecycle status of a collection
type CollectionStatus string

const (
	CollectionActive   CollectionStatus = "ACTIVE"
	CollectionArchived CollectionStatus = "ARCHIVED"
	CollectionDeleted  CollectionStatus = "DELETED"
)

// ChunkingStrategyType discriminant of the repository/pipeline chunking shape
type ChunkingStrategyType string

const (
	// ChunkingFixed fixed size chunks (size/overlap)
	ChunkingFixed ChunkingStrategyType = "fixed"
	// ChunkingNone documents are ingested unchunked
	ChunkingNone ChunkingStrategyType = "none"
)

// CollectionChunkingType discriminant of the collection chunking shape
type CollectionChunkingType string

const (
	// CollectionChunkingFixedSize fixed size chunks (chunkSize/chunkOverlap)
	CollectionChunkingFixedSize CollectionChunkingType = "FIXED_SIZE"
)

// PipelineTrigger ingestion cadence of a pipeline
type PipelineTrigger string

const (
	TriggerDaily PipelineTrigger = "daily"
	TriggerEvent PipelineTrigger = "event"
)

// CollectionSortBy sortable collection columns
type CollectionSortBy string

const (
	SortByName      CollectionSortBy = "NAME"
	SortByCreatedAt CollectionSortBy = "CREATED_AT"
	SortByUpdatedAt CollectionSortBy = "UPDATED_AT"
)

// SortOrder sort direction
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)
