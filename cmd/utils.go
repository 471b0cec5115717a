package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/yaoapp/kun/exception"
	"github.com/yaoapp/lisa/rag"
	"github.com/yaoapp/lisa/rag/types"
)

// parsers the models the CLI validates, by kind
var parsers = map[string]func(raw interface{}) (interface{}, error){
	"chunking": func(raw interface{}) (interface{}, error) {
		return rag.ParseChunkingStrategy(raw)
	},
	"collection-chunking": func(raw interface{}) (interface{}, error) {
		return rag.ParseCollectionChunkingStrategy(raw)
	},
	"pipeline": func(raw interface{}) (interface{}, error) {
		return rag.ParsePipeline(raw)
	},
	"metadata": func(raw interface{}) (interface{}, error) {
		return rag.ParseMetadata(raw)
	},
	"repository": func(raw interface{}) (interface{}, error) {
		return rag.ParseRepository(raw)
	},
	"collection": func(raw interface{}) (interface{}, error) {
		return rag.ParseCollection(raw)
	},
}

func kinds(m map[string]func(raw interface{}) (interface{}, error)) []string {
	names := []string{}
	for _, name := range rag.SchemaNames() {
		if _, has := m[name]; has {
			names = append(names, name)
		}
	}
	return names
}

// parseFile decodes file and parses it as kind
func parseFile(kind string, file string) (interface{}, error) {
	parser, has := parsers[kind]
	if !has {
		return nil, fmt.Errorf(L("Unknown kind %s, expected one of: %s"), kind, strings.Join(kinds(parsers), ", "))
	}

	raw, err := readDocument(file)
	if err != nil {
		return nil, err
	}
	return parser(raw)
}

// readDocument reads a JSON or YAML file into its generic form
func readDocument(file string) (interface{}, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	doc, err := rag.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return doc, nil
}

// readObject reads a JSON or YAML file holding an object
func readObject(file string) (map[string]interface{}, error) {
	doc, err := readDocument(file)
	if err != nil {
		return nil, err
	}

	obj, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: expected an object", file)
	}
	return obj, nil
}

func printJSON(v interface{}) {
	data, err := jsoniter.MarshalIndent(v, "", "  ")
	if err != nil {
		exception.New("Can't encode output %s", 500, err.Error()).Throw()
	}
	fmt.Println(string(data))
}

func printErrors(err error) {
	for _, fe := range types.FieldErrorsOf(err) {
		if len(fe.Path) == 0 {
			color.Red("  %s\n", fe.Message)
			continue
		}
		color.Red("  %s: %s\n", strings.Join(fe.Path, "."), fe.Message)
	}
}

func fatal() {
	if err := exception.Catch(recover()); err != nil {
		color.Red(L("Fatal: %s")+"\n", err.Error())
		os.Exit(1)
	}
}
