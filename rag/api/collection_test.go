package api

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaoapp/kun/maps"
	"github.com/yaoapp/lisa/rag/types"
)

func TestCreateCollection(t *testing.T) {
	instance, _ := prepare(t)
	repo := testRepository(t, nil)

	collection, err := instance.CreateCollection(&CreateCollectionParams{
		Collection: map[string]interface{}{"name": "Docs", "allowedGroups": []interface{}{"eng"}},
		Repository: repo,
		CreatedBy:  "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, testCollectionID, collection.CollectionID)
	assert.Equal(t, "my-repo", collection.RepositoryID)
	assert.Equal(t, "alice", collection.CreatedBy)
	assert.True(t, collection.CreatedAt.Equal(testNow))
	assert.True(t, collection.UpdatedAt.Equal(testNow))
	assert.Equal(t, types.CollectionActive, collection.Status)
	assert.True(t, collection.AllowChunkingOverride)
	assert.Equal(t, []string{"eng"}, collection.AllowedGroups)

	// identity fields from the form are ignored, an explicit id is kept
	collection, err = instance.CreateCollection(&CreateCollectionParams{
		Collection: map[string]interface{}{
			"collectionId": "8a7c1f52-95b4-4d1e-9a43-0f3f7c2d1e6b",
			"createdBy":    "mallory",
			"createdAt":    "2000-01-01T00:00:00Z",
		},
		Repository: repo,
		CreatedBy:  "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "8a7c1f52-95b4-4d1e-9a43-0f3f7c2d1e6b", collection.CollectionID)
	assert.Equal(t, "alice", collection.CreatedBy)
	assert.True(t, collection.CreatedAt.Equal(testNow))
}

func TestCreateCollectionPolicy(t *testing.T) {
	instance, _ := prepare(t)
	repo := testRepository(t, nil)

	_, err := instance.CreateCollection(&CreateCollectionParams{
		Collection: map[string]interface{}{"allowedGroups": []interface{}{"eng", "hr", "legal"}},
		Repository: repo,
		CreatedBy:  "alice",
	})
	assert.Equal(t, "groups not allowed by the repository: hr, legal", paths(err)["allowedGroups"])

	siblings := []types.RagCollectionConfig{testCollection(t, map[string]interface{}{
		"collectionId": "8a7c1f52-95b4-4d1e-9a43-0f3f7c2d1e6b",
		"name":         "docs",
	})}
	_, err = instance.CreateCollection(&CreateCollectionParams{
		Collection: map[string]interface{}{"name": " Docs ", "allowedGroups": []interface{}{"hr"}},
		Repository: repo,
		Siblings:   siblings,
		CreatedBy:  "alice",
	})
	errs := paths(err)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "allowedGroups")

	_, err = instance.CreateCollection(&CreateCollectionParams{
		Collection: map[string]interface{}{"repositoryId": "other-repo"},
		Repository: repo,
		CreatedBy:  "alice",
	})
	assert.Contains(t, paths(err), "repositoryId")

	_, err = instance.CreateCollection(&CreateCollectionParams{
		Collection: map[string]interface{}{"chunkingStrategy": map[string]interface{}{"type": "FIXED_SIZE", "chunkSize": 1000, "chunkOverlap": 600}},
		Repository: repo,
		CreatedBy:  "alice",
	})
	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "chunkOverlap must be less than or equal to half of chunkSize", paths(err)["chunkingStrategy.chunkOverlap"])

	// a public repository accepts any groups
	public := testRepository(t, map[string]interface{}{"allowedGroups": []interface{}{}})
	_, err = instance.CreateCollection(&CreateCollectionParams{
		Collection: map[string]interface{}{"allowedGroups": []interface{}{"anyone"}},
		Repository: public,
		CreatedBy:  "alice",
	})
	assert.NoError(t, err)
}

func TestCreateCollectionParams(t *testing.T) {
	instance, _ := prepare(t)

	_, err := instance.CreateCollection(nil)
	assert.Error(t, err)

	_, err = instance.CreateCollection(&CreateCollectionParams{CreatedBy: "alice"})
	assert.Error(t, err)

	_, err = instance.CreateCollection(&CreateCollectionParams{Repository: testRepository(t, nil)})
	assert.Error(t, err)
}

func TestUpdateCollection(t *testing.T) {
	instance, clock := prepare(t)
	repo := testRepository(t, nil)

	baseline, err := instance.CreateCollection(&CreateCollectionParams{
		Collection: map[string]interface{}{"name": "Docs"},
		Repository: repo,
		CreatedBy:  "alice",
	})
	require.NoError(t, err)

	clock.now = testNow.Add(24 * time.Hour)
	res, err := instance.UpdateCollection(&UpdateCollectionParams{
		Baseline:   *baseline,
		Changes:    map[string]interface{}{"name": "Docs v2", "description": "team documents"},
		Repository: repo,
	})
	require.NoError(t, err)
	assert.Equal(t, "Docs v2", res.Collection.Name)
	assert.True(t, res.Collection.CreatedAt.Equal(testNow))
	assert.Equal(t, maps.MapStrAny{
		"name":        "Docs v2",
		"description": "team documents",
		"updatedAt":   "2024-05-02T12:00:00Z",
	}, res.Patch)

	// removing a field sends it as null
	res, err = instance.UpdateCollection(&UpdateCollectionParams{
		Baseline:   *res.Collection,
		Changes:    map[string]interface{}{"description": nil},
		Repository: repo,
	})
	require.NoError(t, err)
	assert.Contains(t, res.Patch, "description")
	assert.Nil(t, res.Patch["description"])

	// the baseline is not modified
	assert.Equal(t, "Docs", baseline.Name)
}

func TestUpdateCollectionPolicy(t *testing.T) {
	instance, _ := prepare(t)
	repo := testRepository(t, nil)
	baseline := testCollection(t, map[string]interface{}{"name": "Docs"})

	_, err := instance.UpdateCollection(&UpdateCollectionParams{
		Baseline:   baseline,
		Changes:    map[string]interface{}{"createdBy": "mallory", "embeddingModel": "other", "createdAt": "2023-01-01T00:00:00Z"},
		Repository: repo,
	})
	errs := paths(err)
	assert.Equal(t, "createdBy cannot be changed after creation", errs["createdBy"])
	assert.Equal(t, "embeddingModel cannot be changed after creation", errs["embeddingModel"])
	assert.Equal(t, "createdAt cannot be changed after creation", errs["createdAt"])

	_, err = instance.UpdateCollection(&UpdateCollectionParams{
		Baseline:   baseline,
		Changes:    map[string]interface{}{"allowedGroups": []interface{}{"hr"}},
		Repository: repo,
	})
	assert.Equal(t, "groups not allowed by the repository: hr", paths(err)["allowedGroups"])

	siblings := []types.RagCollectionConfig{
		baseline,
		testCollection(t, map[string]interface{}{"collectionId": "8a7c1f52-95b4-4d1e-9a43-0f3f7c2d1e6b", "name": "Reports"}),
	}
	_, err = instance.UpdateCollection(&UpdateCollectionParams{
		Baseline:   baseline,
		Changes:    map[string]interface{}{"name": "REPORTS"},
		Repository: repo,
		Siblings:   siblings,
	})
	assert.Contains(t, paths(err), "name")

	// renaming to its own name is fine
	_, err = instance.UpdateCollection(&UpdateCollectionParams{
		Baseline:   baseline,
		Changes:    map[string]interface{}{"name": "docs"},
		Repository: repo,
		Siblings:   siblings,
	})
	assert.NoError(t, err)

	_, err = instance.UpdateCollection(&UpdateCollectionParams{Baseline: baseline})
	assert.Error(t, err)
}

func TestValidateUniqueName(t *testing.T) {
	child := testCollection(t, map[string]interface{}{"name": "Docs"})
	other := func(name string, extra map[string]interface{}) types.RagCollectionConfig {
		raw := map[string]interface{}{"collectionId": "8a7c1f52-95b4-4d1e-9a43-0f3f7c2d1e6b", "name": name}
		for k, v := range extra {
			raw[k] = v
		}
		return testCollection(t, raw)
	}

	assert.NoError(t, ValidateUniqueName(child, nil))
	assert.Error(t, ValidateUniqueName(child, []types.RagCollectionConfig{other("DOCS", nil)}))
	assert.NoError(t, ValidateUniqueName(child, []types.RagCollectionConfig{other("Docs", map[string]interface{}{"status": "DELETED"})}))
	assert.NoError(t, ValidateUniqueName(child, []types.RagCollectionConfig{other("Docs", map[string]interface{}{"repositoryId": "other-repo"})}))
	assert.NoError(t, ValidateUniqueName(testCollection(t, nil), []types.RagCollectionConfig{other("", nil)}))
}

func TestListCollections(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	collections := []types.RagCollectionConfig{}
	for i := 0; i < 25; i++ {
		status := types.CollectionActive
		if i%5 == 0 {
			status = types.CollectionArchived
		}
		collections = append(collections, types.RagCollectionConfig{
			CollectionID: fmt.Sprintf("c%02d", i),
			Name:         fmt.Sprintf("c%02d", i),
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
			UpdatedAt:    base.Add(-time.Duration(i) * time.Hour),
			Status:       status,
		})
	}

	res := ListCollections(collections, nil)
	assert.Equal(t, 25, res.Total)
	assert.Equal(t, 2, res.PageCnt)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 20, res.PageSize)
	assert.Equal(t, 2, res.Next)
	assert.Equal(t, -1, res.Prev)
	require.Len(t, res.Data, 20)
	assert.Equal(t, "c24", res.Data[0].Name)

	res = ListCollections(collections, &ListCollectionsFilter{Page: 2})
	require.Len(t, res.Data, 5)
	assert.Equal(t, -1, res.Next)
	assert.Equal(t, 1, res.Prev)
	assert.Equal(t, "c00", res.Data[4].Name)

	res = ListCollections(collections, &ListCollectionsFilter{Page: 10})
	assert.Empty(t, res.Data)
	assert.Equal(t, -1, res.Next)
	assert.Equal(t, 9, res.Prev)

	res = ListCollections(collections, &ListCollectionsFilter{PageSize: 500})
	assert.Equal(t, MaxPageSize, res.PageSize)
	assert.Len(t, res.Data, 25)

	res = ListCollections(collections, &ListCollectionsFilter{Keywords: " C1 "})
	assert.Equal(t, 10, res.Total)

	res = ListCollections(collections, &ListCollectionsFilter{Status: []types.CollectionStatus{types.CollectionArchived}})
	assert.Equal(t, 5, res.Total)

	res = ListCollections(collections, &ListCollectionsFilter{SortBy: types.SortByName, SortOrder: types.SortAsc})
	assert.Equal(t, "c00", res.Data[0].Name)

	res = ListCollections(collections, &ListCollectionsFilter{SortBy: types.SortByUpdatedAt, SortOrder: types.SortAsc})
	assert.Equal(t, "c24", res.Data[0].Name)

	res = ListCollections(collections, &ListCollectionsFilter{SortBy: "SIZE", SortOrder: "RANDOM"})
	assert.Equal(t, "c24", res.Data[0].Name)

	// the input keeps its order
	assert.Equal(t, "c00", collections[0].Name)
}
