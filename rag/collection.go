package rag

import (
	"github.com/yaoapp/lisa/rag/types"
)

// ParseCollection parses a collection. Rules that need the parent repository or the
// sibling collections live in rag/api.
func ParseCollection(raw interface{}) (*types.RagCollectionConfig, error) {
	var collection types.RagCollectionConfig
	if err := parse("collection", CollectionSchema, raw, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// ParseMetadata parses repository or collection metadata
func ParseMetadata(raw interface{}) (*types.Metadata, error) {
	var metadata types.Metadata
	if err := parse("metadata", MetadataSchema, raw, &metadata); err != nil {
		return nil, err
	}
	return &metadata, nil
}
