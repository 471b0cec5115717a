package api

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/yaoapp/lisa/rag/types"
)

// ValidateAgainstParent checks the rules a collection must satisfy against its repository:
// it belongs to the repository, and its allowedGroups are a subset of the repository's.
// A repository without allowedGroups is public and accepts any list.
func ValidateAgainstParent(child types.RagCollectionConfig, parent types.RagRepositoryConfig) error {
	var errs *multierror.Error

	if child.RepositoryID != parent.RepositoryID {
		errs = multierror.Append(errs, types.NewPolicyError("repositoryId", "collection belongs to repository %q, not %q", child.RepositoryID, parent.RepositoryID))
	}

	if len(parent.AllowedGroups) > 0 {
		outside := []string{}
		for _, group := range child.AllowedGroups {
			if !contains(parent.AllowedGroups, group) {
				outside = append(outside, group)
			}
		}
		if len(outside) > 0 {
			errs = multierror.Append(errs, types.NewPolicyError("allowedGroups", "groups not allowed by the repository: %s", strings.Join(outside, ", ")))
		}
	}

	return errs.ErrorOrNil()
}

// ValidateImmutable rejects changes to the fields fixed at creation
func ValidateImmutable(before, after types.RagCollectionConfig) error {
	var errs *multierror.Error
	changed := func(field string) {
		errs = multierror.Append(errs, types.NewPolicyError(field, "%s cannot be changed after creation", field))
	}

	if before.CollectionID != after.CollectionID {
		changed("collectionId")
	}
	if before.RepositoryID != after.RepositoryID {
		changed("repositoryId")
	}
	if before.EmbeddingModel != after.EmbeddingModel {
		changed("embeddingModel")
	}
	if before.CreatedBy != after.CreatedBy {
		changed("createdBy")
	}
	if !before.CreatedAt.Equal(after.CreatedAt) {
		changed("createdAt")
	}

	return errs.ErrorOrNil()
}

// ValidateUniqueName rejects a name already used by another collection of the repository.
// Names compare case-insensitively; unnamed collections never conflict.
func ValidateUniqueName(child types.RagCollectionConfig, siblings []types.RagCollectionConfig) error {
	name := strings.TrimSpace(child.Name)
	if name == "" {
		return nil
	}

	for _, sibling := range siblings {
		if sibling.CollectionID == child.CollectionID || sibling.RepositoryID != child.RepositoryID {
			continue
		}
		if sibling.Status == types.CollectionDeleted {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(sibling.Name), name) {
			return types.NewPolicyError("name", "a collection named %q already exists in repository %s", child.Name, child.RepositoryID)
		}
	}
	return nil
}
