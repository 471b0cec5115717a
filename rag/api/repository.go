package api

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/lisa/diff"
	"github.com/yaoapp/lisa/rag"
	"github.com/yaoapp/lisa/rag/types"
)

// readonlyRepositoryFields are never submitted
var readonlyRepositoryFields = []string{"status", "legacy"}

// BuildRepositoryUpdate merges form values over the baseline, validates the submission and
// computes the PATCH payload.
//
// repositoryId and type cannot change. Once the repository is deployed, the locked fields
// of existing pipelines cannot change either. A knowledge base repository never submits
// pipelines and always resubmits its full dataSources list; other types never submit a
// knowledge base config.
func (instance *Instance) BuildRepositoryUpdate(baseline types.RagRepositoryConfig, form map[string]interface{}) (*RepositoryUpdate, error) {
	generic, err := rag.ToGeneric(baseline)
	if err != nil {
		return nil, err
	}

	submission := generic.(map[string]interface{})
	for key, value := range form {
		submission[key] = value
	}

	var errs error
	if id, has := form["repositoryId"]; has && fmt.Sprint(id) != baseline.RepositoryID {
		errs = multierror.Append(errs, types.NewPolicyError("repositoryId", "repositoryId cannot be changed after creation"))
	}
	if t, has := form["type"]; has && types.ParseRepositoryType(fmt.Sprint(t)) != baseline.Type {
		errs = multierror.Append(errs, types.NewPolicyError("type", "type cannot be changed after creation"))
	}
	if errs != nil {
		return nil, errs
	}

	updated, err := rag.ParseRepository(submission)
	if err != nil {
		return nil, err
	}

	if IsDeployed(baseline) && !updated.IsBedrock() {
		if err := ValidatePipelineLocks(baseline.Pipelines, updated.Pipelines); err != nil {
			return nil, err
		}
	}

	base := baseline
	rag.StripBackingStores(&base)
	before, err := submittable(&base)
	if err != nil {
		return nil, err
	}
	after, err := submittable(updated)
	if err != nil {
		return nil, err
	}

	patch, err := diff.Diff(before, after)
	if err != nil {
		return nil, err
	}

	if updated.IsBedrock() {
		kb, _ := patch["bedrockKnowledgeBaseConfig"].(map[string]interface{})
		if kb == nil {
			kb = map[string]interface{}{}
		}
		if current, ok := after["bedrockKnowledgeBaseConfig"].(map[string]interface{}); ok {
			kb["dataSources"] = current["dataSources"]
		}
		patch["bedrockKnowledgeBaseConfig"] = kb
	}

	log.Trace("[RAG] repository %s update: %d changed fields", updated.RepositoryID, len(patch))
	return &RepositoryUpdate{Repository: updated, Patch: patch}, nil
}

// submittable the generic form of repo restricted to what an update may send
func submittable(repo *types.RagRepositoryConfig) (map[string]interface{}, error) {
	generic, err := rag.ToGeneric(repo)
	if err != nil {
		return nil, err
	}

	res := generic.(map[string]interface{})
	for _, field := range readonlyRepositoryFields {
		delete(res, field)
	}
	if repo.IsBedrock() {
		delete(res, "pipelines")
	} else {
		delete(res, "bedrockKnowledgeBaseConfig")
	}
	return res, nil
}

// ValidatePipelineLocks rejects changes to the locked fields of existing pipelines.
//
// A pipeline is identified by its key (collectionId:s3Bucket:s3Prefix), never by its
// position. A pipeline whose key is still present must keep its trigger and autoRemove.
// Any other pipeline is new.
func ValidatePipelineLocks(before, after []types.PipelineConfig) error {
	var errs *multierror.Error

	existing := rag.PipelineIndex(before)
	for i, p := range after {
		if old, has := existing[p.Key()]; has {
			errs = appendLocked(errs, i, old, p, types.PipelineLockedFields...)
		}
	}

	return errs.ErrorOrNil()
}

func appendLocked(errs *multierror.Error, index int, before, after types.PipelineConfig, fields ...string) *multierror.Error {
	values := func(p types.PipelineConfig) map[string]interface{} {
		return map[string]interface{}{
			"trigger":    p.Trigger,
			"autoRemove": p.AutoRemove,
		}
	}

	old, cur := values(before), values(after)
	for _, field := range fields {
		if old[field] == cur[field] {
			continue
		}
		errs = multierror.Append(errs, &types.PolicyError{
			Path:    []string{"pipelines", strconv.Itoa(index), field},
			Message: fmt.Sprintf("%s cannot be changed once the pipeline is deployed", field),
		})
	}
	return errs
}

// IsDeployed the backing infrastructure of the repository exists
func IsDeployed(repo types.RagRepositoryConfig) bool {
	switch repo.Status {
	case "", types.StatusCreateInProgress, types.StatusCreateFailed:
		return false
	}
	return true
}

// DeleteModeFor legacy repositories are removed from the record only
func DeleteModeFor(repo types.RagRepositoryConfig) DeleteMode {
	if repo.Legacy {
		return DeleteRecordOnly
	}
	return DeleteFull
}
