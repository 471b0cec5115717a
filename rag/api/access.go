package api

import (
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/lisa/rag/types"
)

// CanAccess reports whether principal may use the collection.
// Admins always can. Private collections are limited to their creator. Otherwise the
// effective allowedGroups apply, an empty list being public.
func (instance *Instance) CanAccess(collection types.RagCollectionConfig, repository types.RagRepositoryConfig, principal Principal) bool {
	if instance.IsAdmin(principal) {
		return true
	}

	if collection.Private {
		return principal.Username != "" && principal.Username == collection.CreatedBy
	}

	groups := EffectiveAllowedGroups(collection, repository)
	if len(groups) == 0 {
		return true
	}

	for _, group := range principal.Groups {
		if contains(groups, group) {
			return true
		}
	}

	log.Trace("[RAG] %s denied on collection %s", principal.Username, collection.CollectionID)
	return false
}
