package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yaoapp/lisa/rag/types"
)

// API the service operations on repositories and collections
type API interface {
	// Collection operations
	CreateCollection(params *CreateCollectionParams) (*types.RagCollectionConfig, error)
	UpdateCollection(params *UpdateCollectionParams) (*UpdateCollectionResult, error)
	CanAccess(collection types.RagCollectionConfig, repository types.RagRepositoryConfig, principal Principal) bool
	WaitForStatus(ctx context.Context, fetch StatusFunc) (types.VectorStoreStatus, error)

	// Repository operations
	BuildRepositoryUpdate(baseline types.RagRepositoryConfig, form map[string]interface{}) (*RepositoryUpdate, error)
}

// Instance holds the service dependencies
type Instance struct {
	Options Options
}

var _ API = (*Instance)(nil)

// New creates a service instance
func New(options Options) *Instance {
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.NewID == nil {
		options.NewID = uuid.NewString
	}
	if options.PollInterval <= 0 {
		options.PollInterval = DefaultPollInterval
	}
	return &Instance{Options: options}
}

// IsAdmin the principal belongs to one of the admin groups
func (instance *Instance) IsAdmin(principal Principal) bool {
	for _, group := range principal.Groups {
		if contains(instance.Options.AdminGroups, group) {
			return true
		}
	}
	return false
}

func (instance *Instance) now() time.Time {
	if instance.Options.Now == nil {
		return time.Now().UTC()
	}
	return instance.Options.Now().UTC()
}

func (instance *Instance) newID() string {
	if instance.Options.NewID == nil {
		return uuid.NewString()
	}
	return instance.Options.NewID()
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
