package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yaoapp/lisa/rag"
	"github.com/yaoapp/lisa/rag/types"
)

const testCollectionID = "0b1f6f0e-3d1c-4f4f-9d6a-2b7c1e0a9f10"

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// testClock a clock advanced by hand
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func prepare(t *testing.T) (*Instance, *testClock) {
	t.Helper()
	clock := &testClock{now: testNow}
	instance := New(Options{
		AdminGroups: []string{"admin"},
		Now:         clock.Now,
		NewID:       func() string { return testCollectionID },
	})
	return instance, clock
}

func testRepository(t *testing.T, extra map[string]interface{}) *types.RagRepositoryConfig {
	t.Helper()
	raw := map[string]interface{}{
		"repositoryId":     "my-repo",
		"type":             "pgvector",
		"rdsConfig":        map[string]interface{}{},
		"embeddingModelId": "titan-embed",
		"allowedGroups":    []interface{}{"eng", "ops"},
		"chunkingStrategy": map[string]interface{}{"type": "fixed", "size": 1000, "overlap": 100},
		"metadata":         map[string]interface{}{"tags": []interface{}{"repo"}, "customFields": map[string]interface{}{"owner": "platform"}},
	}
	for k, v := range extra {
		raw[k] = v
	}

	repo, err := rag.ParseRepository(raw)
	require.NoError(t, err)
	return repo
}

func testCollection(t *testing.T, extra map[string]interface{}) types.RagCollectionConfig {
	t.Helper()
	raw := map[string]interface{}{
		"collectionId": testCollectionID,
		"repositoryId": "my-repo",
		"createdBy":    "alice",
		"createdAt":    "2024-01-01T00:00:00Z",
		"updatedAt":    "2024-01-01T00:00:00Z",
	}
	for k, v := range extra {
		raw[k] = v
	}

	collection, err := rag.ParseCollection(raw)
	require.NoError(t, err)
	return *collection
}

func paths(err error) map[string]string {
	res := map[string]string{}
	for _, fe := range types.FieldErrorsOf(err) {
		key := ""
		for i, p := range fe.Path {
			if i > 0 {
				key += "."
			}
			key += p
		}
		res[key] = fe.Message
	}
	return res
}
