package rag

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/cast"
	"github.com/yaoapp/lisa/rag/types"
)

const repositoryIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// ParseRepository parses a repository. Enum names are accepted for "type", a legacy flat
// bedrockKnowledgeBaseConfig is migrated first, and backing store configs that do not
// match the type are dropped from the result.
func ParseRepository(raw interface{}) (*types.RagRepositoryConfig, error) {
	generic, err := ToGeneric(raw)
	if err != nil {
		return nil, invalid("repository", []types.FieldError{{Path: []string{}, Message: err.Error()}})
	}

	if m, ok := generic.(map[string]interface{}); ok {
		generic = prepareRepository(m)
	}

	var repo types.RagRepositoryConfig
	if err := parse("repository", RepositorySchema, generic, &repo); err != nil {
		return nil, err
	}

	StripBackingStores(&repo)
	return &repo, nil
}

func prepareRepository(raw map[string]interface{}) map[string]interface{} {
	res := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		res[k] = v
	}

	if t, ok := raw["type"].(string); ok {
		res["type"] = string(types.ParseRepositoryType(t))
	}

	if kb, ok := raw["bedrockKnowledgeBaseConfig"].(map[string]interface{}); ok && IsLegacyBedrockConfig(kb) {
		res["bedrockKnowledgeBaseConfig"] = MigrateBedrockConfig(kb)
	}
	return res
}

// StripBackingStores drops the backing store configs that do not match the repository type
func StripBackingStores(repo *types.RagRepositoryConfig) {
	if repo.Type != types.RepositoryTypeOpenSearch {
		repo.OpenSearchConfig = nil
	}
	if repo.Type != types.RepositoryTypePGVector {
		repo.RdsConfig = nil
	}
	if repo.Type != types.RepositoryTypeBedrockKnowledgeBase {
		repo.BedrockKnowledgeBaseConfig = nil
	}
}

// IsLegacyBedrockConfig reports the flat single-data-source shape
func IsLegacyBedrockConfig(raw map[string]interface{}) bool {
	_, current := raw["knowledgeBaseId"]
	_, legacy := raw["bedrockKnowledgeBaseId"]
	return legacy && !current
}

// MigrateBedrockConfig converts the flat legacy knowledge base shape to the current one.
// The input is not modified.
func MigrateBedrockConfig(raw map[string]interface{}) map[string]interface{} {
	legacy := types.LegacyBedrockKnowledgeBaseConfig{
		BedrockKnowledgeBaseName:           cast.ToString(raw["bedrockKnowledgeBaseName"]),
		BedrockKnowledgeBaseID:             cast.ToString(raw["bedrockKnowledgeBaseId"]),
		BedrockKnowledgeDatasourceName:     cast.ToString(raw["bedrockKnowledgeDatasourceName"]),
		BedrockKnowledgeDatasourceID:       cast.ToString(raw["bedrockKnowledgeDatasourceId"]),
		BedrockKnowledgeDatasourceS3Bucket: cast.ToString(raw["bedrockKnowledgeDatasourceS3Bucket"]),
	}

	kb := MigrateLegacyBedrock(legacy)
	sources := make([]interface{}, 0, len(kb.DataSources))
	for _, ds := range kb.DataSources {
		source := map[string]interface{}{"id": ds.ID}
		if ds.Name != "" {
			source["name"] = ds.Name
		}
		if ds.S3Uri != "" {
			source["s3Uri"] = ds.S3Uri
		}
		sources = append(sources, source)
	}

	res := map[string]interface{}{
		"knowledgeBaseId": kb.KnowledgeBaseID,
		"dataSources":     sources,
	}
	if kb.KnowledgeBaseName != "" {
		res["knowledgeBaseName"] = kb.KnowledgeBaseName
	}
	return res
}

// MigrateLegacyBedrock converts the typed legacy shape
func MigrateLegacyBedrock(legacy types.LegacyBedrockKnowledgeBaseConfig) types.BedrockKnowledgeBaseConfig {
	kb := types.BedrockKnowledgeBaseConfig{
		KnowledgeBaseID:   legacy.BedrockKnowledgeBaseID,
		KnowledgeBaseName: legacy.BedrockKnowledgeBaseName,
		DataSources:       []types.BedrockDataSource{},
	}

	if legacy.BedrockKnowledgeDatasourceID == "" {
		return kb
	}

	source := types.BedrockDataSource{
		ID:   legacy.BedrockKnowledgeDatasourceID,
		Name: legacy.BedrockKnowledgeDatasourceName,
	}
	if bucket := legacy.BedrockKnowledgeDatasourceS3Bucket; bucket != "" {
		if strings.HasPrefix(bucket, "s3://") {
			source.S3Uri = bucket
		} else {
			source.S3Uri = fmt.Sprintf("s3://%s", bucket)
		}
	}
	kb.DataSources = append(kb.DataSources, source)
	return kb
}

// NewRepositoryID suggests a repository id for create wizards
func NewRepositoryID() (string, error) {
	id, err := gonanoid.Generate(repositoryIDAlphabet, 8)
	if err != nil {
		return "", err
	}
	return "repo-" + id, nil
}
