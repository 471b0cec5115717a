package api

import (
	"time"

	"github.com/yaoapp/lisa/rag/types"
)

// Default pagination settings
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Default sort settings
const (
	DefaultSortBy    = types.SortByCreatedAt
	DefaultSortOrder = types.SortDesc
)

// DefaultPollInterval status polling interval used when none is given
const DefaultPollInterval = 5 * time.Second

// ValidCollectionSortFields sortable columns
var ValidCollectionSortFields = map[types.CollectionSortBy]bool{
	types.SortByName:      true,
	types.SortByCreatedAt: true,
	types.SortByUpdatedAt: true,
}

// DeleteMode how a repository is removed
type DeleteMode string

const (
	// DeleteFull tears down the backing infrastructure with the record
	DeleteFull DeleteMode = "FULL"
	// DeleteRecordOnly removes the record only; the infrastructure is managed out of band
	DeleteRecordOnly DeleteMode = "RECORD_ONLY"
)
