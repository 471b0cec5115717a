package types

// RagRepositoryConfig a vector-store-backed RAG repository
type RagRepositoryConfig struct {
	RepositoryID               string                      `json:"repositoryId" yaml:"repositoryId" validate:"required,repoid"`
	RepositoryName             string                      `json:"repositoryName,omitempty" yaml:"repositoryName,omitempty"`
	Description                string                      `json:"description,omitempty" yaml:"description,omitempty"`
	EmbeddingModelID           string                      `json:"embeddingModelId,omitempty" yaml:"embeddingModelId,omitempty"`
	Type                       RepositoryType              `json:"type" yaml:"type" validate:"required,oneof=opensearch pgvector bedrock_knowledge_base"`
	OpenSearchConfig           *OpenSearchConfig           `json:"opensearchConfig,omitempty" yaml:"opensearchConfig,omitempty"`
	RdsConfig                  *RdsConfig                  `json:"rdsConfig,omitempty" yaml:"rdsConfig,omitempty"`
	BedrockKnowledgeBaseConfig *BedrockKnowledgeBaseConfig `json:"bedrockKnowledgeBaseConfig,omitempty" yaml:"bedrockKnowledgeBaseConfig,omitempty"`
	ChunkingStrategy           *ChunkingStrategy           `json:"chunkingStrategy,omitempty" yaml:"chunkingStrategy,omitempty"` // Inherited by collections without their own strategy
	Pipelines                  []PipelineConfig            `json:"pipelines" yaml:"pipelines" validate:"dive"`
	AllowedGroups              []string                    `json:"allowedGroups" yaml:"allowedGroups" validate:"dive,required"` // nil or empty: public
	Metadata                   *Metadata                   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Status                     VectorStoreStatus           `json:"status,omitempty" yaml:"status,omitempty" validate:"omitempty,oneof=CREATE_IN_PROGRESS CREATE_COMPLETE CREATE_FAILED UPDATE_IN_PROGRESS UPDATE_COMPLETE UPDATE_COMPLETE_CLEANUP_IN_PROGRESS DELETE_IN_PROGRESS DELETE_FAILED UNKNOWN"`
	Legacy                     bool                        `json:"legacy,omitempty" yaml:"legacy,omitempty"` // Provisioned from static configuration
}

// IsBedrock backed by a managed knowledge base
func (r *RagRepositoryConfig) IsBedrock() bool {
	return r.Type == RepositoryTypeBedrockKnowledgeBase
}

// Metadata tags and free-form fields shared by repositories and collections
type Metadata struct {
	Tags         []string               `json:"tags" yaml:"tags" validate:"max=50,dive,max=50,ragtag"`
	CustomFields map[string]interface{} `json:"customFields" yaml:"customFields"`
}

// OpenSearchConfig either an existing domain (Endpoint) or a new cluster definition
type OpenSearchConfig struct {
	Endpoint               string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	DataNodes              *int   `json:"dataNodes,omitempty" yaml:"dataNodes,omitempty" validate:"omitempty,min=1"`
	DataNodeInstanceType   string `json:"dataNodeInstanceType,omitempty" yaml:"dataNodeInstanceType,omitempty"`
	MasterNodes            *int   `json:"masterNodes,omitempty" yaml:"masterNodes,omitempty" validate:"omitempty,min=0"`
	MasterNodeInstanceType string `json:"masterNodeInstanceType,omitempty" yaml:"masterNodeInstanceType,omitempty"`
	VolumeSize             *int   `json:"volumeSize,omitempty" yaml:"volumeSize,omitempty" validate:"omitempty,min=20"`
	VolumeType             string `json:"volumeType,omitempty" yaml:"volumeType,omitempty" validate:"omitempty,oneof=standard io1 io2 gp2 gp3 st1 sc1"`
	MultiAzWithStandby     *bool  `json:"multiAzWithStandby,omitempty" yaml:"multiAzWithStandby,omitempty"`
}

// IsExisting points at an existing domain
func (c *OpenSearchConfig) IsExisting() bool {
	return c != nil && c.Endpoint != ""
}

// RdsConfig managed Postgres connection
type RdsConfig struct {
	Username         string `json:"username" yaml:"username" validate:"required"`
	PasswordSecretID string `json:"passwordSecretId,omitempty" yaml:"passwordSecretId,omitempty"`
	DBHost           string `json:"dbHost,omitempty" yaml:"dbHost,omitempty"`
	DBName           string `json:"dbName" yaml:"dbName" validate:"required"`
	DBPort           int    `json:"dbPort" yaml:"dbPort" validate:"min=1,max=65535"`
}

// BedrockKnowledgeBaseConfig a managed knowledge base and its tracked data sources
type BedrockKnowledgeBaseConfig struct {
	KnowledgeBaseID   string              `json:"knowledgeBaseId" yaml:"knowledgeBaseId" validate:"required"`
	KnowledgeBaseName string              `json:"knowledgeBaseName,omitempty" yaml:"knowledgeBaseName,omitempty"`
	DataSources       []BedrockDataSource `json:"dataSources" yaml:"dataSources" validate:"dive"`
}

// BedrockDataSource a data source of a knowledge base
type BedrockDataSource struct {
	ID    string `json:"id" yaml:"id" validate:"required"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	S3Uri string `json:"s3Uri,omitempty" yaml:"s3Uri,omitempty" validate:"omitempty,startswith=s3://"`
}

// LegacyBedrockKnowledgeBaseConfig the flat single-data-source shape used by static
// deployment configuration. Migrated to BedrockKnowledgeBaseConfig before parsing.
type LegacyBedrockKnowledgeBaseConfig struct {
	BedrockKnowledgeBaseName           string `json:"bedrockKnowledgeBaseName" yaml:"bedrockKnowledgeBaseName"`
	BedrockKnowledgeBaseID             string `json:"bedrockKnowledgeBaseId" yaml:"bedrockKnowledgeBaseId"`
	BedrockKnowledgeDatasourceName     string `json:"bedrockKnowledgeDatasourceName" yaml:"bedrockKnowledgeDatasourceName"`
	BedrockKnowledgeDatasourceID       string `json:"bedrockKnowledgeDatasourceId" yaml:"bedrockKnowledgeDatasourceId"`
	BedrockKnowledgeDatasourceS3Bucket string `json:"bedrockKnowledgeDatasourceS3Bucket" yaml:"bedrockKnowledgeDatasourceS3Bucket"`
}
