package api

import (
	"time"

	"github.com/yaoapp/kun/maps"
	"github.com/yaoapp/lisa/rag/types"
)

// Options service configuration, passed explicitly
type Options struct {
	AdminGroups  []string         `json:"adminGroups,omitempty" yaml:"adminGroups,omitempty"`
	PollInterval time.Duration    `json:"pollInterval,omitempty" yaml:"pollInterval,omitempty"` // Deployment status polling, defaults to DefaultPollInterval
	Now          func() time.Time `json:"-" yaml:"-"`                                           // Clock, defaults to time.Now
	NewID        func() string    `json:"-" yaml:"-"`                                           // Collection id generator, defaults to uuid.NewString
}

// Principal the caller of an access check
type Principal struct {
	Username string   `json:"username" yaml:"username"`
	Groups   []string `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// CreateCollectionParams represents the parameters for creating a collection
type CreateCollectionParams struct {
	Collection map[string]interface{}      `json:"collection" yaml:"collection"` // Form values
	Repository *types.RagRepositoryConfig  `json:"repository" yaml:"repository"`
	Siblings   []types.RagCollectionConfig `json:"siblings,omitempty" yaml:"siblings,omitempty"` // Existing collections of the repository
	CreatedBy  string                      `json:"createdBy" yaml:"createdBy"`
}

// UpdateCollectionParams represents the parameters for updating a collection
type UpdateCollectionParams struct {
	Baseline   types.RagCollectionConfig   `json:"baseline" yaml:"baseline"`
	Changes    map[string]interface{}      `json:"changes" yaml:"changes"`
	Repository *types.RagRepositoryConfig  `json:"repository" yaml:"repository"`
	Siblings   []types.RagCollectionConfig `json:"siblings,omitempty" yaml:"siblings,omitempty"`
}

// UpdateCollectionResult the updated collection and the PATCH payload against the baseline
type UpdateCollectionResult struct {
	Collection *types.RagCollectionConfig `json:"collection" yaml:"collection"`
	Patch      maps.MapStrAny             `json:"patch" yaml:"patch"`
}

// ListCollectionsFilter represents the filter options for listing collections
type ListCollectionsFilter struct {
	Page      int                      `json:"page" yaml:"page"`
	PageSize  int                      `json:"pagesize" yaml:"pagesize"`
	Keywords  string                   `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Status    []types.CollectionStatus `json:"status,omitempty" yaml:"status,omitempty"`
	SortBy    types.CollectionSortBy   `json:"sortBy,omitempty" yaml:"sortBy,omitempty"`
	SortOrder types.SortOrder          `json:"sortOrder,omitempty" yaml:"sortOrder,omitempty"`
}

// ListCollectionsResult represents the result of listing collections
type ListCollectionsResult struct {
	Data     []types.RagCollectionConfig `json:"data" yaml:"data"`
	Next     int                         `json:"next" yaml:"next"`
	Prev     int                         `json:"prev" yaml:"prev"`
	Page     int                         `json:"page" yaml:"page"`
	PageSize int                         `json:"pagesize" yaml:"pagesize"`
	Total    int                         `json:"total" yaml:"total"`
	PageCnt  int                         `json:"pagecnt" yaml:"pagecnt"`
}

// StatusFunc fetches the current deployment status of a repository
type StatusFunc func() (types.VectorStoreStatus, error)

// RepositoryUpdate the validated repository and the PATCH payload against the baseline
type RepositoryUpdate struct {
	Repository *types.RagRepositoryConfig `json:"repository" yaml:"repository"`
	Patch      maps.MapStrAny             `json:"patch" yaml:"patch"`
}
