package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaoapp/kun/maps"
)

type testRepository struct {
	RepositoryID   string   `json:"repositoryId"`
	RepositoryName string   `json:"repositoryName,omitempty"`
	AllowedGroups  []string `json:"allowedGroups"`
}

func TestDiff(t *testing.T) {
	patch, err := Diff(
		map[string]interface{}{"repositoryId": "r1", "repositoryName": "A"},
		map[string]interface{}{"repositoryId": "r1", "repositoryName": "B"},
	)
	require.NoError(t, err)
	assert.Equal(t, maps.MapStrAny{"repositoryName": "B"}, patch)

	patch, err = Diff(
		map[string]interface{}{"repositoryId": "r1"},
		map[string]interface{}{"repositoryId": "r1"},
	)
	require.NoError(t, err)
	assert.Empty(t, patch)
}

func TestDiffRemovedAndArrays(t *testing.T) {
	patch, err := Diff(
		map[string]interface{}{"a": 1, "removed": "x", "groups": []interface{}{"eng", "ops"}},
		map[string]interface{}{"a": 1, "groups": []interface{}{"eng"}, "added": true},
	)
	require.NoError(t, err)
	assert.Equal(t, maps.MapStrAny{
		"removed": nil,
		"groups":  []interface{}{"eng"},
		"added":   true,
	}, patch)

	// arrays are replaced as a whole, even when only order changes
	patch, err = Diff(
		map[string]interface{}{"groups": []interface{}{"a", "b"}},
		map[string]interface{}{"groups": []interface{}{"b", "a"}},
	)
	require.NoError(t, err)
	assert.Equal(t, maps.MapStrAny{"groups": []interface{}{"b", "a"}}, patch)
}

func TestDiffNested(t *testing.T) {
	baseline := map[string]interface{}{
		"metadata": map[string]interface{}{"tags": []interface{}{"a"}, "customFields": map[string]interface{}{"owner": "alice", "team": "x"}},
		"rdsConfig": map[string]interface{}{"dbPort": 5432},
	}
	updated := map[string]interface{}{
		"metadata":  map[string]interface{}{"tags": []interface{}{"a"}, "customFields": map[string]interface{}{"owner": "bob"}},
		"rdsConfig": map[string]interface{}{"dbPort": 5432},
	}

	patch, err := Diff(baseline, updated)
	require.NoError(t, err)
	assert.Equal(t, maps.MapStrAny{
		"metadata": map[string]interface{}{
			"customFields": map[string]interface{}{"owner": "bob", "team": nil},
		},
	}, patch)
}

func TestDiffStructs(t *testing.T) {
	patch, err := Diff(
		testRepository{RepositoryID: "r1", RepositoryName: "A", AllowedGroups: []string{"eng"}},
		&testRepository{RepositoryID: "r1", AllowedGroups: []string{"eng"}},
	)
	require.NoError(t, err)
	assert.Equal(t, maps.MapStrAny{"repositoryName": nil}, patch)

	// int and float forms of the same number are equal
	patch, err = Diff(map[string]interface{}{"n": 1}, map[string]interface{}{"n": 1.0})
	require.NoError(t, err)
	assert.Empty(t, patch)

	_, err = Diff([]interface{}{1}, map[string]interface{}{})
	assert.Error(t, err)

	_, err = Diff(map[string]interface{}{}, make(chan int))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	baseline := map[string]interface{}{
		"repositoryId":   "r1",
		"repositoryName": "A",
		"metadata":       map[string]interface{}{"tags": []interface{}{"a"}, "customFields": map[string]interface{}{"owner": "alice", "team": "x"}},
		"allowedGroups":  []interface{}{"eng", "ops"},
	}
	updated := map[string]interface{}{
		"repositoryId":  "r1",
		"metadata":      map[string]interface{}{"tags": []interface{}{"a", "b"}, "customFields": map[string]interface{}{"owner": "alice"}},
		"allowedGroups": []interface{}{"eng"},
		"description":   "docs",
	}

	patch, err := Diff(baseline, updated)
	require.NoError(t, err)

	res, err := Apply(baseline, patch)
	require.NoError(t, err)
	assert.Equal(t, maps.MapStrAny(updated), res)

	// baseline untouched
	assert.Equal(t, "A", baseline["repositoryName"])

	res, err = Apply(nil, maps.MapStrAny{"a": maps.MapStrAny{"b": 1}})
	require.NoError(t, err)
	assert.Equal(t, maps.MapStrAny{"a": maps.MapStrAny{"b": 1}}, res)
}
