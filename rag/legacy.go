package rag

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/lisa/rag/types"
	"gopkg.in/yaml.v3"
)

var envPattern = regexp.MustCompile(`\$ENV\.([A-Za-z_][A-Za-z0-9_]*)`)

// LoadLegacyRepositories loads the repositories provisioned by static deployment configuration
func LoadLegacyRepositories(path string) ([]types.RagRepositoryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLegacyRepositories(data)
}

// ParseLegacyRepositories parses a YAML document holding either a "ragRepositories" list or
// a bare list of repositories. $ENV.NAME references are resolved, legacy pipeline and
// knowledge base shapes are migrated, and every entry is flagged legacy.
//
// Entries that fail to parse are skipped; their errors are aggregated and returned with the
// entries that parsed.
func ParseLegacyRepositories(data []byte) ([]types.RagRepositoryConfig, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("legacy repositories: %w", err)
	}

	entries, err := legacyEntries(doc)
	if err != nil {
		return nil, err
	}

	var errs error
	repos := []types.RagRepositoryConfig{}
	for i, entry := range entries {
		raw, ok := entry.(map[string]interface{})
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("ragRepositories[%d]: expected object", i))
			continue
		}

		repo, err := ParseRepository(migrateLegacy(raw))
		if err != nil {
			log.Warn("[RAG] legacy repository %d skipped: %s", i, err.Error())
			errs = multierror.Append(errs, fmt.Errorf("ragRepositories[%d]: %w", i, err))
			continue
		}

		repo.Legacy = true
		repos = append(repos, *repo)
	}

	log.Trace("[RAG] %d legacy repositories loaded", len(repos))
	return repos, errs
}

func legacyEntries(doc interface{}) ([]interface{}, error) {
	switch v := doc.(type) {
	case nil:
		return []interface{}{}, nil
	case []interface{}:
		return v, nil
	case map[string]interface{}:
		list, has := v["ragRepositories"]
		if !has || list == nil {
			return []interface{}{}, nil
		}
		entries, ok := list.([]interface{})
		if !ok {
			return nil, fmt.Errorf("legacy repositories: ragRepositories must be a list")
		}
		return entries, nil
	}
	return nil, fmt.Errorf("legacy repositories: unexpected document %T", doc)
}

func migrateLegacy(raw map[string]interface{}) map[string]interface{} {
	res := resolveEnv(raw).(map[string]interface{})

	if pipelines, ok := res["pipelines"].([]interface{}); ok {
		migrated := make([]interface{}, len(pipelines))
		for i, p := range pipelines {
			if m, ok := p.(map[string]interface{}); ok {
				migrated[i] = MigratePipeline(m)
				continue
			}
			migrated[i] = p
		}
		res["pipelines"] = migrated
	}
	return res
}

// resolveEnv copies value, replacing $ENV.NAME in strings with the environment value.
// Unset variables are left as is.
func resolveEnv(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		return envPattern.ReplaceAllStringFunc(v, func(match string) string {
			if env := os.Getenv(strings.TrimPrefix(match, "$ENV.")); env != "" {
				return env
			}
			return match
		})

	case map[string]interface{}:
		res := make(map[string]interface{}, len(v))
		for key, item := range v {
			res[key] = resolveEnv(item)
		}
		return res

	case []interface{}:
		res := make([]interface{}, len(v))
		for i, item := range v {
			res[i] = resolveEnv(item)
		}
		return res
	}
	return value
}
