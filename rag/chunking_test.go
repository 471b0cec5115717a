package rag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaoapp/lisa/rag/types"
	"github.com/yaoapp/lisa/schema"
)

func fieldError(t *testing.T, err error, path ...string) types.FieldError {
	t.Helper()
	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr), "expected a validation error, got %v", err)
	fe, has := verr.Field(path...)
	require.True(t, has, "no error on %v: %v", path, verr.Errors)
	return fe
}

func TestParseChunkingStrategy(t *testing.T) {
	t.Run("fixed", func(t *testing.T) {
		strategy, err := ParseChunkingStrategy(map[string]interface{}{"type": "fixed", "size": 1000, "overlap": 500})
		require.NoError(t, err)
		assert.Equal(t, types.ChunkingFixed, strategy.Type)
		assert.Equal(t, 1000, strategy.SizeOrZero())
		assert.Equal(t, 500, strategy.OverlapOrZero())
	})

	t.Run("fixed defaults", func(t *testing.T) {
		strategy, err := ParseChunkingStrategy(map[string]interface{}{"type": "fixed"})
		require.NoError(t, err)
		assert.Equal(t, types.NewFixedChunking(512, 51), strategy)
	})

	t.Run("none", func(t *testing.T) {
		strategy, err := ParseChunkingStrategy(map[string]interface{}{"type": "none", "size": 100})
		require.NoError(t, err)
		assert.Equal(t, types.NewNoneChunking(), strategy)
	})

	tests := []struct {
		name    string
		raw     map[string]interface{}
		path    []string
		message string
	}{
		{"overlap above half", map[string]interface{}{"type": "fixed", "size": 1000, "overlap": 501}, []string{"overlap"}, "overlap must be less than or equal to half of size"},
		{"size too small", map[string]interface{}{"type": "fixed", "size": 99, "overlap": 10}, []string{"size"}, "Number must be greater than or equal to 100"},
		{"size too large", map[string]interface{}{"type": "fixed", "size": 10001, "overlap": 10}, []string{"size"}, "Number must be less than or equal to 10000"},
		{"negative overlap", map[string]interface{}{"type": "fixed", "size": 1000, "overlap": -1}, []string{"overlap"}, "Number must be greater than or equal to 0"},
		{"unknown type", map[string]interface{}{"type": "semantic"}, []string{"type"}, "Invalid discriminator value. Expected 'fixed' | 'none'"},
		{"collection shape", map[string]interface{}{"type": "FIXED_SIZE", "chunkSize": 1000}, []string{"type"}, "Invalid discriminator value. Expected 'fixed' | 'none'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseChunkingStrategy(tt.raw)
			assert.Equal(t, tt.message, fieldError(t, err, tt.path...).Message)
		})
	}
}

func TestParseChunkingStrategyOverlapBound(t *testing.T) {
	for size := 100; size <= 10000; size += 997 {
		for _, overlap := range []int{0, size / 2, size/2 + 1, size} {
			strategy, err := ParseChunkingStrategy(map[string]interface{}{"type": "fixed", "size": size, "overlap": overlap})
			if overlap*2 > size {
				assert.Error(t, err, "size %d overlap %d", size, overlap)
				continue
			}
			require.NoError(t, err, "size %d overlap %d", size, overlap)
			assert.LessOrEqual(t, strategy.OverlapOrZero()*2, strategy.SizeOrZero())
		}
	}
}

func TestParseCollectionChunkingStrategy(t *testing.T) {
	strategy, err := ParseCollectionChunkingStrategy(map[string]interface{}{"type": "FIXED_SIZE"})
	require.NoError(t, err)
	assert.Equal(t, &types.CollectionChunkingStrategy{Type: types.CollectionChunkingFixedSize, ChunkSize: 512, ChunkOverlap: 51}, strategy)

	_, err = ParseCollectionChunkingStrategy(map[string]interface{}{"type": "FIXED_SIZE", "chunkSize": 1000, "chunkOverlap": 600})
	assert.Equal(t, "chunkOverlap must be less than or equal to half of chunkSize", fieldError(t, err, "chunkOverlap").Message)

	_, err = ParseCollectionChunkingStrategy(map[string]interface{}{"type": "FIXED_SIZE", "chunkSize": 50, "chunkOverlap": 10})
	assert.Equal(t, "Number must be greater than or equal to 100", fieldError(t, err, "chunkSize").Message)

	_, err = ParseCollectionChunkingStrategy(map[string]interface{}{"type": "fixed", "size": 1000})
	assert.Equal(t, "Invalid discriminator value. Expected 'FIXED_SIZE'", fieldError(t, err, "type").Message)
}

func TestChunkingDefaults(t *testing.T) {
	assert.Equal(t, map[string]interface{}{"size": 512, "overlap": 51}, schema.Defaults(FixedSizeChunkingSchema))
	assert.Equal(t, map[string]interface{}{"chunkSize": 512, "chunkOverlap": 51}, schema.Defaults(CollectionFixedSizeChunkingSchema))
}

func TestChunkingAdapters(t *testing.T) {
	collection := ToCollectionChunking(types.NewFixedChunking(1000, 100))
	assert.Equal(t, &types.CollectionChunkingStrategy{Type: types.CollectionChunkingFixedSize, ChunkSize: 1000, ChunkOverlap: 100}, collection)
	assert.Equal(t, types.NewFixedChunking(1000, 100), ToRepositoryChunking(collection))

	assert.Nil(t, ToCollectionChunking(types.NewNoneChunking()))
	assert.Nil(t, ToCollectionChunking(nil))
	assert.Nil(t, ToRepositoryChunking(nil))
}
