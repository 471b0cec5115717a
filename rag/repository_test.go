package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaoapp/lisa/rag/types"
	"github.com/yaoapp/lisa/schema"
)

func TestParseRepositoryOpenSearch(t *testing.T) {
	repo, err := ParseRepository(map[string]interface{}{
		"repositoryId":     "my-repo",
		"type":             "OPENSEARCH",
		"opensearchConfig": map[string]interface{}{"dataNodes": 2, "dataNodeInstanceType": "r7g.large.search"},
	})
	require.NoError(t, err)
	assert.Equal(t, types.RepositoryTypeOpenSearch, repo.Type)
	require.NotNil(t, repo.OpenSearchConfig)
	assert.False(t, repo.OpenSearchConfig.IsExisting())
	assert.Equal(t, 2, *repo.OpenSearchConfig.DataNodes)
	assert.Equal(t, 0, *repo.OpenSearchConfig.MasterNodes)
	assert.Equal(t, 20, *repo.OpenSearchConfig.VolumeSize)
	assert.Equal(t, "gp3", repo.OpenSearchConfig.VolumeType)
	assert.Equal(t, []types.PipelineConfig{}, repo.Pipelines)
	assert.Nil(t, repo.AllowedGroups)

	repo, err = ParseRepository(map[string]interface{}{
		"repositoryId":     "my-repo",
		"type":             "opensearch",
		"opensearchConfig": map[string]interface{}{"endpoint": "https://search.example.com"},
	})
	require.NoError(t, err)
	assert.True(t, repo.OpenSearchConfig.IsExisting())
	assert.Nil(t, repo.OpenSearchConfig.DataNodes)
}

func TestParseRepositoryBackingStore(t *testing.T) {
	_, err := ParseRepository(map[string]interface{}{"repositoryId": "my-repo", "type": "PGVECTOR"})
	assert.Equal(t, "rdsConfig is required when type is pgvector", fieldError(t, err, "rdsConfig").Message)

	_, err = ParseRepository(map[string]interface{}{"repositoryId": "my-repo", "type": "opensearch"})
	assert.Equal(t, "opensearchConfig is required when type is opensearch", fieldError(t, err, "opensearchConfig").Message)

	_, err = ParseRepository(map[string]interface{}{"repositoryId": "my-repo", "type": "bedrock_knowledge_base"})
	assert.Equal(t, "bedrockKnowledgeBaseConfig is required when type is bedrock_knowledge_base", fieldError(t, err, "bedrockKnowledgeBaseConfig").Message)

	_, err = ParseRepository(map[string]interface{}{"repositoryId": "my-repo", "type": "qdrant"})
	assert.Equal(t, "Invalid enum value. Expected 'opensearch' | 'pgvector' | 'bedrock_knowledge_base', received 'qdrant'", fieldError(t, err, "type").Message)

	repo, err := ParseRepository(map[string]interface{}{
		"repositoryId":     "my-repo",
		"type":             "pgvector",
		"rdsConfig":        map[string]interface{}{"dbHost": "db.internal"},
		"opensearchConfig": map[string]interface{}{"endpoint": "https://search.example.com"},
	})
	require.NoError(t, err)
	assert.Nil(t, repo.OpenSearchConfig)
	assert.Equal(t, &types.RdsConfig{Username: "postgres", DBHost: "db.internal", DBName: "postgres", DBPort: 5432}, repo.RdsConfig)
}

func TestParseRepositoryID(t *testing.T) {
	valid := []string{"abc", "my-repo", "a1-b2-c3", strings.Repeat("a", 20)}
	for _, id := range valid {
		assert.True(t, IsRepositoryID(id), id)
	}

	invalid := []string{"ab", "-repo", "repo-", "My-Repo", "my_repo", "my repo", strings.Repeat("a", 21)}
	for _, id := range invalid {
		assert.False(t, IsRepositoryID(id), id)
		_, err := ParseRepository(map[string]interface{}{
			"repositoryId": id,
			"type":         "pgvector",
			"rdsConfig":    map[string]interface{}{},
		})
		assert.Equal(t, messages["repoid"], fieldError(t, err, "repositoryId").Message, id)
	}

	id, err := NewRepositoryID()
	require.NoError(t, err)
	assert.True(t, IsRepositoryID(id), id)
	assert.True(t, strings.HasPrefix(id, "repo-"))
}

func TestParseRepositoryNested(t *testing.T) {
	base := func(extra map[string]interface{}) map[string]interface{} {
		raw := map[string]interface{}{
			"repositoryId": "my-repo",
			"type":         "pgvector",
			"rdsConfig":    map[string]interface{}{},
		}
		for k, v := range extra {
			raw[k] = v
		}
		return raw
	}

	_, err := ParseRepository(base(map[string]interface{}{
		"pipelines": []interface{}{
			map[string]interface{}{"s3Bucket": "a"},
			map[string]interface{}{"s3Bucket": "b", "s3Prefix": "/x"},
		},
	}))
	assert.Equal(t, messages["s3noleading"], fieldError(t, err, "pipelines", "1", "s3Prefix").Message)

	_, err = ParseRepository(base(map[string]interface{}{
		"pipelines": []interface{}{map[string]interface{}{"s3Prefix": "x/"}},
	}))
	assert.Equal(t, "Required", fieldError(t, err, "pipelines", "0", "s3Bucket").Message)

	_, err = ParseRepository(base(map[string]interface{}{
		"metadata": map[string]interface{}{"tags": []interface{}{"ok", "bad tag"}},
	}))
	assert.Equal(t, messages["ragtag"], fieldError(t, err, "metadata", "tags", "1").Message)

	_, err = ParseRepository(base(map[string]interface{}{
		"metadata": map[string]interface{}{"tags": []interface{}{strings.Repeat("t", 51)}},
	}))
	assert.Equal(t, "String must contain at most 50 character(s)", fieldError(t, err, "metadata", "tags", "0").Message)

	tags := make([]interface{}, 51)
	for i := range tags {
		tags[i] = "t"
	}
	_, err = ParseRepository(base(map[string]interface{}{"metadata": map[string]interface{}{"tags": tags}}))
	assert.Equal(t, "Array must contain at most 50 element(s)", fieldError(t, err, "metadata", "tags").Message)

	_, err = ParseRepository(base(map[string]interface{}{
		"chunkingStrategy": map[string]interface{}{"type": "fixed", "size": 1000, "overlap": 600},
	}))
	assert.Equal(t, "overlap must be less than or equal to half of size", fieldError(t, err, "chunkingStrategy", "overlap").Message)
}

func TestParseRepositoryLegacyBedrock(t *testing.T) {
	repo, err := ParseRepository(map[string]interface{}{
		"repositoryId": "kb-repo",
		"type":         "BEDROCK_KNOWLEDGE_BASE",
		"bedrockKnowledgeBaseConfig": map[string]interface{}{
			"bedrockKnowledgeBaseName":           "kb",
			"bedrockKnowledgeBaseId":             "KB123",
			"bedrockKnowledgeDatasourceName":     "ds",
			"bedrockKnowledgeDatasourceId":       "DS123",
			"bedrockKnowledgeDatasourceS3Bucket": "kb-bucket",
		},
	})
	require.NoError(t, err)
	assert.True(t, repo.IsBedrock())
	assert.Equal(t, &types.BedrockKnowledgeBaseConfig{
		KnowledgeBaseID:   "KB123",
		KnowledgeBaseName: "kb",
		DataSources:       []types.BedrockDataSource{{ID: "DS123", Name: "ds", S3Uri: "s3://kb-bucket"}},
	}, repo.BedrockKnowledgeBaseConfig)

	_, err = ParseRepository(map[string]interface{}{
		"repositoryId": "kb-repo",
		"type":         "bedrock_knowledge_base",
		"bedrockKnowledgeBaseConfig": map[string]interface{}{
			"knowledgeBaseId": "KB123",
			"dataSources":     []interface{}{map[string]interface{}{"id": "DS1", "s3Uri": "https://bucket"}},
		},
	})
	assert.Equal(t, `Invalid input: must start with "s3://"`, fieldError(t, err, "bedrockKnowledgeBaseConfig", "dataSources", "0", "s3Uri").Message)
}

func TestMigrateBedrockConfig(t *testing.T) {
	legacy := map[string]interface{}{
		"bedrockKnowledgeBaseId":             "KB1",
		"bedrockKnowledgeDatasourceId":       "DS1",
		"bedrockKnowledgeDatasourceS3Bucket": "s3://already-uri",
	}
	assert.True(t, IsLegacyBedrockConfig(legacy))
	assert.False(t, IsLegacyBedrockConfig(map[string]interface{}{"knowledgeBaseId": "KB1"}))

	assert.Equal(t, map[string]interface{}{
		"knowledgeBaseId": "KB1",
		"dataSources":     []interface{}{map[string]interface{}{"id": "DS1", "s3Uri": "s3://already-uri"}},
	}, MigrateBedrockConfig(legacy))

	kb := MigrateLegacyBedrock(types.LegacyBedrockKnowledgeBaseConfig{BedrockKnowledgeBaseID: "KB1"})
	assert.Equal(t, "KB1", kb.KnowledgeBaseID)
	assert.Empty(t, kb.DataSources)
}

func TestParseRepositoryRoundTrip(t *testing.T) {
	raw := map[string]interface{}{
		"repositoryId":   "my-repo",
		"repositoryName": "Docs",
		"type":           "opensearch",
		"opensearchConfig": map[string]interface{}{
			"dataNodes": 3,
		},
		"chunkingStrategy": map[string]interface{}{"type": "none"},
		"pipelines": []interface{}{
			map[string]interface{}{"s3Bucket": "docs", "s3Prefix": "a/", "chunkingStrategy": map[string]interface{}{"type": "fixed"}},
		},
		"allowedGroups": []interface{}{"eng"},
		"metadata":      map[string]interface{}{"tags": []interface{}{"x"}, "customFields": map[string]interface{}{"n": 1}},
		"status":        "CREATE_COMPLETE",
	}

	first, err := ParseRepository(raw)
	require.NoError(t, err)

	data, err := json.Marshal(first)
	require.NoError(t, err)
	doc, err := Decode(data)
	require.NoError(t, err)

	second, err := ParseRepository(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	third, err := ParseRepository(*second)
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestRepositoryDefaults(t *testing.T) {
	defaults := schema.Defaults(RepositoryBaseSchema)
	assert.Equal(t, []interface{}{}, defaults["pipelines"])
	assert.Equal(t, "", defaults["repositoryId"])
	assert.Equal(t, map[string]interface{}{
		"username":         "postgres",
		"passwordSecretId": "",
		"dbHost":           "",
		"dbName":           "postgres",
		"dbPort":           5432,
	}, defaults["rdsConfig"])
	assert.NotContains(t, defaults, "opensearchConfig")

	assert.Empty(t, schema.Defaults(RepositorySchema))
}

func TestDecode(t *testing.T) {
	doc, err := Decode([]byte(`{"a": 1}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, doc)

	doc, err = Decode([]byte("a: 1\nb: [x, y]\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": 1, "b": []interface{}{"x", "y"}}, doc)

	_, err = Decode([]byte("  "))
	assert.Error(t, err)
}
