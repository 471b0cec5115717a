package rag

import (
	"sort"

	"github.com/yaoapp/lisa/rag/types"
	"github.com/yaoapp/lisa/schema"
)

// Default values shared by the schemas and the migration helpers
const (
	DefaultChunkSize          = 512
	DefaultChunkOverlap       = 51
	DefaultOpenSearchInstance = "r7g.large.search"
	DefaultRdsUsername        = "postgres"
	DefaultRdsDatabase        = "postgres"
	DefaultRdsPort            = 5432
)

// EBSVolumeTypes volume types accepted for new OpenSearch clusters
var EBSVolumeTypes = []string{"standard", "io1", "io2", "gp2", "gp3", "st1", "sc1"}

// FixedSizeChunkingSchema repository/pipeline fixed size variant
var FixedSizeChunkingSchema = schema.Obj(
	schema.F("type", schema.Lit(string(types.ChunkingFixed))),
	schema.F("size", schema.Def(schema.Int(), DefaultChunkSize)),
	schema.F("overlap", schema.Def(schema.Int(), DefaultChunkOverlap)),
)

// NoneChunkingSchema repository/pipeline variant that ingests documents unchunked
var NoneChunkingSchema = schema.Obj(
	schema.F("type", schema.Lit(string(types.ChunkingNone))),
)

// ChunkingStrategySchema repository/pipeline chunking union, discriminated by "type"
var ChunkingStrategySchema = &schema.Union{
	Discriminator: "type",
	Variants: []schema.Node{
		schema.Refine(FixedSizeChunkingSchema, "overlap <= size/2"),
		NoneChunkingSchema,
	},
}

// CollectionFixedSizeChunkingSchema collection fixed size variant
var CollectionFixedSizeChunkingSchema = schema.Obj(
	schema.F("type", schema.Lit(string(types.CollectionChunkingFixedSize))),
	schema.F("chunkSize", schema.Def(schema.Int(), DefaultChunkSize)),
	schema.F("chunkOverlap", schema.Def(schema.Int(), DefaultChunkOverlap)),
)

// CollectionChunkingStrategySchema collection chunking union, discriminated by "type"
var CollectionChunkingStrategySchema = &schema.Union{
	Discriminator: "type",
	Variants: []schema.Node{
		schema.Refine(CollectionFixedSizeChunkingSchema, "chunkOverlap <= chunkSize/2"),
	},
}

// PipelineSchema an S3-triggered ingestion pipeline
var PipelineSchema = schema.Obj(
	schema.F("chunkSize", schema.Def(schema.Int(), DefaultChunkSize)),
	schema.F("chunkOverlap", schema.Def(schema.Int(), DefaultChunkOverlap)),
	schema.F("chunkingStrategy", schema.Opt(ChunkingStrategySchema)),
	schema.F("embeddingModel", schema.Opt(schema.Str())),
	schema.F("collectionId", schema.Opt(schema.Str())),
	schema.F("s3Bucket", schema.Str()),
	schema.F("s3Prefix", schema.Def(schema.Str(), "")),
	schema.F("trigger", schema.Def(schema.OneOf(string(types.TriggerDaily), string(types.TriggerEvent)), string(types.TriggerEvent))),
	schema.F("autoRemove", schema.Def(schema.Boolean(), true)),
)

// MetadataSchema tags and custom fields
var MetadataSchema = schema.Obj(
	schema.F("tags", schema.Def(schema.List(schema.Str()), []interface{}{})),
	schema.F("customFields", schema.Def(&schema.Record{Values: &schema.Any{}}, map[string]interface{}{})),
)

// OpenSearchExistingSchema an existing OpenSearch domain
var OpenSearchExistingSchema = schema.Obj(
	schema.F("endpoint", schema.Str()),
)

// OpenSearchNewClusterSchema a cluster provisioned with the repository
var OpenSearchNewClusterSchema = schema.Obj(
	schema.F("dataNodes", schema.Def(schema.Int(), 2)),
	schema.F("dataNodeInstanceType", schema.Def(schema.Str(), DefaultOpenSearchInstance)),
	schema.F("masterNodes", schema.Def(schema.Int(), 0)),
	schema.F("masterNodeInstanceType", schema.Def(schema.Str(), DefaultOpenSearchInstance)),
	schema.F("volumeSize", schema.Def(schema.Int(), 20)),
	schema.F("volumeType", schema.Def(schema.OneOf(EBSVolumeTypes...), "gp3")),
	schema.F("multiAzWithStandby", schema.Def(schema.Boolean(), false)),
)

// OpenSearchSchema existing endpoint or new cluster; the first matching shape wins
var OpenSearchSchema = &schema.Union{
	Variants: []schema.Node{OpenSearchExistingSchema, OpenSearchNewClusterSchema},
}

// RdsSchema managed Postgres connection
var RdsSchema = schema.Obj(
	schema.F("username", schema.Def(schema.Str(), DefaultRdsUsername)),
	schema.F("passwordSecretId", schema.Opt(schema.Str())),
	schema.F("dbHost", schema.Opt(schema.Str())),
	schema.F("dbName", schema.Def(schema.Str(), DefaultRdsDatabase)),
	schema.F("dbPort", schema.Def(schema.Int(), DefaultRdsPort)),
)

// BedrockDataSourceSchema a knowledge base data source
var BedrockDataSourceSchema = schema.Obj(
	schema.F("id", schema.Str()),
	schema.F("name", schema.Opt(schema.Str())),
	schema.F("s3Uri", schema.Opt(schema.Str())),
)

// BedrockKnowledgeBaseSchema a managed knowledge base
var BedrockKnowledgeBaseSchema = schema.Obj(
	schema.F("knowledgeBaseId", schema.Str()),
	schema.F("knowledgeBaseName", schema.Opt(schema.Str())),
	schema.F("dataSources", schema.Def(schema.List(BedrockDataSourceSchema), []interface{}{})),
)

// RepositoryBaseSchema the repository shape without its refinement. Create wizards seed
// from schema.Defaults(RepositoryBaseSchema).
var RepositoryBaseSchema = schema.Obj(
	schema.F("repositoryId", schema.Str()),
	schema.F("repositoryName", schema.Opt(schema.Str())),
	schema.F("description", schema.Opt(schema.Str())),
	schema.F("embeddingModelId", schema.Opt(schema.Str())),
	schema.F("type", schema.OneOf(repositoryTypeValues()...)),
	schema.F("opensearchConfig", schema.Opt(OpenSearchSchema)),
	schema.F("rdsConfig", schema.Opt(RdsSchema)),
	schema.F("bedrockKnowledgeBaseConfig", schema.Opt(BedrockKnowledgeBaseSchema)),
	schema.F("chunkingStrategy", schema.Opt(ChunkingStrategySchema)),
	schema.F("pipelines", schema.Def(schema.List(PipelineSchema), []interface{}{})),
	schema.F("allowedGroups", schema.Opt(schema.List(schema.Str()))),
	schema.F("metadata", schema.Opt(MetadataSchema)),
	schema.F("status", schema.Opt(schema.OneOf(vectorStoreStatusValues()...))),
	schema.F("legacy", schema.Opt(schema.Boolean())),
)

// RepositorySchema the repository refined by "backing store config matches type"
var RepositorySchema = schema.Refine(RepositoryBaseSchema, "backing store matches type")

// CollectionSchema a collection
var CollectionSchema = schema.Obj(
	schema.F("collectionId", schema.UUID()),
	schema.F("repositoryId", schema.Str()),
	schema.F("name", schema.Opt(schema.Str())),
	schema.F("description", schema.Opt(schema.Str())),
	schema.F("chunkingStrategy", schema.Opt(CollectionChunkingStrategySchema)),
	schema.F("allowChunkingOverride", schema.Def(schema.Boolean(), true)),
	schema.F("metadata", schema.Opt(MetadataSchema)),
	schema.F("allowedGroups", schema.Opt(schema.List(schema.Str()))),
	schema.F("embeddingModel", schema.Opt(schema.Str())),
	schema.F("createdBy", schema.Str()),
	schema.F("createdAt", schema.DateTime()),
	schema.F("updatedAt", schema.DateTime()),
	schema.F("status", schema.Def(schema.OneOf(string(types.CollectionActive), string(types.CollectionArchived), string(types.CollectionDeleted)), string(types.CollectionActive))),
	schema.F("private", schema.Def(schema.Boolean(), false)),
	schema.F("pipelines", schema.Def(schema.List(PipelineSchema), []interface{}{})),
)

// Schemas the named schemas, used by the CLI
var Schemas = map[string]schema.Node{
	"chunking":            ChunkingStrategySchema,
	"fixed-chunking":      FixedSizeChunkingSchema,
	"collection-chunking": CollectionChunkingStrategySchema,
	"pipeline":            PipelineSchema,
	"metadata":            MetadataSchema,
	"opensearch":          OpenSearchSchema,
	"rds":                 RdsSchema,
	"bedrock":             BedrockKnowledgeBaseSchema,
	"repository":          RepositorySchema,
	"repository-base":     RepositoryBaseSchema,
	"collection":          CollectionSchema,
}

// SchemaNames the names in Schemas, sorted
func SchemaNames() []string {
	names := make([]string, 0, len(Schemas))
	for name := range Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func repositoryTypeValues() []string {
	values := make([]string, len(types.RepositoryTypes))
	for i, t := range types.RepositoryTypes {
		values[i] = string(t)
	}
	return values
}

func vectorStoreStatusValues() []string {
	values := make([]string, len(types.VectorStoreStatuses))
	for i, s := range types.VectorStoreStatuses {
		values[i] = string(s)
	}
	return values
}
