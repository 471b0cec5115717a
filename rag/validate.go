package rag

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yaoapp/lisa/rag/types"
)

var (
	repositoryIDRe = regexp.MustCompile(`^[a-z0-9-]{3,20}$`)
	relativeRe     = regexp.MustCompile(`(^|/)\.{1,2}(/|$)`)
	s3KeyRe        = regexp.MustCompile(`^([a-zA-Z0-9!_.*'()-]+/)*[a-zA-Z0-9!_.*'()-]*$`)
	tagRe          = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	collectionRe   = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)
)

// messages of the custom rules
var messages = map[string]string{
	"repoid":      "Repository ID must be 3-20 lowercase letters, numbers or hyphens and cannot start or end with a hyphen",
	"s3norel":     "Prefix cannot contain relative path components (./ or ../)",
	"s3noleading": "Prefix cannot start with /",
	"s3key":       "Prefix may only contain letters, numbers and !_.*'()- separated by single slashes",
	"ragtag":      "Tags may only contain letters, numbers, hyphens and underscores",
	"collname":    "Collection name may only contain letters, numbers, spaces, hyphens and underscores",
	"uuid":        "Invalid uuid",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	rules := map[string]validator.Func{
		"repoid":      isRepositoryID,
		"s3norel":     isNotRelative,
		"s3noleading": isNotLeadingSlash,
		"s3key":       isS3Key,
		"ragtag":      isTag,
		"collname":    isCollectionName,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s: %s", tag, err.Error()))
		}
	}

	v.RegisterStructValidation(validateChunking, types.ChunkingStrategy{})
	v.RegisterStructValidation(validateCollectionChunking, types.CollectionChunkingStrategy{})
	v.RegisterStructValidation(validateOpenSearch, types.OpenSearchConfig{})
	v.RegisterStructValidation(validateRepository, types.RagRepositoryConfig{})
	return v
}

// IsRepositoryID checks the repository id grammar
func IsRepositoryID(id string) bool {
	return repositoryIDRe.MatchString(id) && !strings.HasPrefix(id, "-") && !strings.HasSuffix(id, "-")
}

// IsS3Prefix checks every s3Prefix rule, returning the first violated message
func IsS3Prefix(prefix string) (bool, string) {
	switch {
	case relativeRe.MatchString(prefix):
		return false, messages["s3norel"]
	case strings.HasPrefix(prefix, "/"):
		return false, messages["s3noleading"]
	case !s3KeyRe.MatchString(prefix):
		return false, messages["s3key"]
	}
	return true, ""
}

func isRepositoryID(fl validator.FieldLevel) bool {
	return IsRepositoryID(fl.Field().String())
}

func isNotRelative(fl validator.FieldLevel) bool {
	return !relativeRe.MatchString(fl.Field().String())
}

func isNotLeadingSlash(fl validator.FieldLevel) bool {
	return !strings.HasPrefix(fl.Field().String(), "/")
}

func isS3Key(fl validator.FieldLevel) bool {
	return s3KeyRe.MatchString(fl.Field().String())
}

func isTag(fl validator.FieldLevel) bool {
	return tagRe.MatchString(fl.Field().String())
}

func isCollectionName(fl validator.FieldLevel) bool {
	return collectionRe.MatchString(fl.Field().String())
}

func validateChunking(sl validator.StructLevel) {
	c := sl.Current().Interface().(types.ChunkingStrategy)
	if c.Type != types.ChunkingFixed {
		return
	}

	if c.Size == nil {
		sl.ReportError(c.Size, "size", "Size", "required", "")
	}
	if c.Overlap == nil {
		sl.ReportError(c.Overlap, "overlap", "Overlap", "required", "")
	}
	if c.Size == nil || c.Overlap == nil {
		return
	}

	size, overlap := *c.Size, *c.Overlap
	if !checkChunkRange(sl, size, overlap, "size", "Size", "overlap", "Overlap") {
		return
	}
	if overlap*2 > size {
		sl.ReportError(overlap, "overlap", "Overlap", "lehalf", "size")
	}
}

func validateCollectionChunking(sl validator.StructLevel) {
	c := sl.Current().Interface().(types.CollectionChunkingStrategy)
	if c.ChunkSize < 100 || c.ChunkSize > 10000 || c.ChunkOverlap < 0 {
		return // reported by the field tags
	}
	if c.ChunkOverlap*2 > c.ChunkSize {
		sl.ReportError(c.ChunkOverlap, "chunkOverlap", "ChunkOverlap", "lehalf", "chunkSize")
	}
}

func checkChunkRange(sl validator.StructLevel, size, overlap int, sizeName, sizeField, overlapName, overlapField string) bool {
	ok := true
	if size < 100 {
		sl.ReportError(size, sizeName, sizeField, "min", "100")
		ok = false
	} else if size > 10000 {
		sl.ReportError(size, sizeName, sizeField, "max", "10000")
		ok = false
	}
	if overlap < 0 {
		sl.ReportError(overlap, overlapName, overlapField, "min", "0")
		ok = false
	}
	return ok
}

func validateOpenSearch(sl validator.StructLevel) {
	c := sl.Current().Interface().(types.OpenSearchConfig)
	if c.Endpoint == "" && c.DataNodes == nil {
		sl.ReportError(c.Endpoint, "endpoint", "Endpoint", "required", "")
	}
}

func validateRepository(sl validator.StructLevel) {
	r := sl.Current().Interface().(types.RagRepositoryConfig)
	switch r.Type {
	case types.RepositoryTypeOpenSearch:
		if r.OpenSearchConfig == nil {
			sl.ReportError(r.OpenSearchConfig, "opensearchConfig", "OpenSearchConfig", "requiredfor", string(r.Type))
		}
	case types.RepositoryTypePGVector:
		if r.RdsConfig == nil {
			sl.ReportError(r.RdsConfig, "rdsConfig", "RdsConfig", "requiredfor", string(r.Type))
		}
	case types.RepositoryTypeBedrockKnowledgeBase:
		if r.BedrockKnowledgeBaseConfig == nil {
			sl.ReportError(r.BedrockKnowledgeBaseConfig, "bedrockKnowledgeBaseConfig", "BedrockKnowledgeBaseConfig", "requiredfor", string(r.Type))
		}
	}
}

// fieldErrors translates validator errors into path addressed field errors
func fieldErrors(err error) []types.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []types.FieldError{{Path: []string{}, Message: err.Error()}}
	}

	res := make([]types.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		res = append(res, types.FieldError{Path: namespacePath(fe.Namespace()), Message: message(fe)})
	}
	return res
}

// namespacePath "RagRepositoryConfig.pipelines[0].s3Prefix" => [pipelines 0 s3Prefix]
func namespacePath(ns string) []string {
	parts := strings.Split(ns, ".")
	path := []string{}
	for _, part := range parts[1:] {
		for part != "" {
			open := strings.Index(part, "[")
			if open < 0 {
				path = append(path, part)
				break
			}
			if open > 0 {
				path = append(path, part[:open])
			}
			end := strings.Index(part, "]")
			if end < open {
				path = append(path, part[open:])
				break
			}
			path = append(path, part[open+1:end])
			part = part[end+1:]
		}
	}
	return path
}

func message(fe validator.FieldError) string {
	if msg, has := messages[fe.Tag()]; has {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return "Required"

	case "min", "max":
		return boundMessage(fe)

	case "oneof":
		return fmt.Sprintf("Invalid enum value. Expected %s, received '%v'", quote(strings.Fields(fe.Param())), fe.Value())

	case "startswith":
		return fmt.Sprintf("Invalid input: must start with %q", fe.Param())

	case "lehalf":
		return fmt.Sprintf("%s must be less than or equal to half of %s", fe.Field(), fe.Param())

	case "requiredfor":
		return fmt.Sprintf("%s is required when type is %s", fe.Field(), fe.Param())
	}

	return fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
}

func boundMessage(fe validator.FieldError) string {
	least := fe.Tag() == "min"
	switch fe.Kind() {
	case reflect.String:
		if least {
			return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
		}
		return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())

	case reflect.Slice, reflect.Array, reflect.Map:
		if least {
			return fmt.Sprintf("Array must contain at least %s element(s)", fe.Param())
		}
		return fmt.Sprintf("Array must contain at most %s element(s)", fe.Param())
	}

	if least {
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	}
	return fmt.Sprintf("Number must be less than or equal to %s", fe.Param())
}

func quote(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, " | ")
}
