package api

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/lisa/diff"
	"github.com/yaoapp/lisa/rag"
	"github.com/yaoapp/lisa/rag/types"
)

// CreateCollection assembles a new collection from form values: identity fields are
// generated, the result is parsed and checked against the repository and its siblings.
func (instance *Instance) CreateCollection(params *CreateCollectionParams) (*types.RagCollectionConfig, error) {
	if err := validateCreateParams(params); err != nil {
		return nil, err
	}

	now := instance.now().Format(time.RFC3339Nano)
	raw := make(map[string]interface{}, len(params.Collection)+5)
	for key, value := range params.Collection {
		raw[key] = value
	}

	if id, _ := raw["collectionId"].(string); id == "" {
		raw["collectionId"] = instance.newID()
	}
	if _, has := raw["repositoryId"]; !has {
		raw["repositoryId"] = params.Repository.RepositoryID
	}
	raw["createdBy"] = params.CreatedBy
	raw["createdAt"] = now
	raw["updatedAt"] = now

	collection, err := rag.ParseCollection(raw)
	if err != nil {
		return nil, err
	}

	var errs error
	if err := ValidateAgainstParent(*collection, *params.Repository); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := ValidateUniqueName(*collection, params.Siblings); err != nil {
		errs = multierror.Append(errs, err)
	}
	if errs != nil {
		return nil, errs
	}

	log.Info("[RAG] collection %s created in repository %s by %s", collection.CollectionID, collection.RepositoryID, collection.CreatedBy)
	return collection, nil
}

// UpdateCollection applies form changes to a baseline collection and returns the updated
// value with its PATCH payload. Immutable fields, the repository rules and name uniqueness
// are all checked; failures are aggregated.
func (instance *Instance) UpdateCollection(params *UpdateCollectionParams) (*UpdateCollectionResult, error) {
	if params == nil || params.Repository == nil {
		return nil, fmt.Errorf("repository is required")
	}

	baseline, err := rag.ToGeneric(params.Baseline)
	if err != nil {
		return nil, err
	}

	raw := baseline.(map[string]interface{})
	for key, value := range params.Changes {
		raw[key] = value
	}
	raw["updatedAt"] = instance.now().Format(time.RFC3339Nano)

	updated, err := rag.ParseCollection(raw)
	if err != nil {
		return nil, err
	}

	var errs error
	if err := ValidateImmutable(params.Baseline, *updated); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := ValidateAgainstParent(*updated, *params.Repository); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := ValidateUniqueName(*updated, params.Siblings); err != nil {
		errs = multierror.Append(errs, err)
	}
	if errs != nil {
		return nil, errs
	}

	patch, err := diff.Diff(params.Baseline, updated)
	if err != nil {
		return nil, err
	}

	log.Trace("[RAG] collection %s update: %d changed fields", updated.CollectionID, len(patch))
	return &UpdateCollectionResult{Collection: updated, Patch: patch}, nil
}

// ListCollections filters, sorts and paginates collections. The input is not modified.
func ListCollections(collections []types.RagCollectionConfig, filter *ListCollectionsFilter) *ListCollectionsResult {
	if filter == nil {
		filter = &ListCollectionsFilter{}
	}

	page := filter.Page
	if page <= 0 {
		page = DefaultPage
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	} else if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	sortBy := filter.SortBy
	if !ValidCollectionSortFields[sortBy] {
		sortBy = DefaultSortBy
	}
	order := filter.SortOrder
	if order != types.SortAsc && order != types.SortDesc {
		order = DefaultSortOrder
	}

	keywords := strings.ToLower(strings.TrimSpace(filter.Keywords))
	matched := []types.RagCollectionConfig{}
	for _, c := range collections {
		if len(filter.Status) > 0 && !containsStatus(filter.Status, c.Status) {
			continue
		}
		if keywords != "" &&
			!strings.Contains(strings.ToLower(c.Name), keywords) &&
			!strings.Contains(strings.ToLower(c.Description), keywords) {
			continue
		}
		matched = append(matched, c)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		less := compareCollections(matched[i], matched[j], sortBy)
		if order == types.SortDesc {
			return less > 0
		}
		return less < 0
	})

	total := len(matched)
	pageCnt := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	result := &ListCollectionsResult{
		Data:     matched[start:end],
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		PageCnt:  pageCnt,
		Next:     -1,
		Prev:     -1,
	}
	if page < pageCnt {
		result.Next = page + 1
	}
	if page > 1 {
		result.Prev = page - 1
	}
	return result
}

func compareCollections(a, b types.RagCollectionConfig, sortBy types.CollectionSortBy) int {
	switch sortBy {
	case types.SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case types.SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
	return a.CreatedAt.Compare(b.CreatedAt)
}

func containsStatus(values []types.CollectionStatus, status types.CollectionStatus) bool {
	for _, v := range values {
		if v == status {
			return true
		}
	}
	return false
}

// validateCreateParams validates the create collection parameters
func validateCreateParams(params *CreateCollectionParams) error {
	if params == nil {
		return fmt.Errorf("params is required")
	}

	if params.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if params.CreatedBy == "" {
		return fmt.Errorf("createdBy is required")
	}

	return nil
}
