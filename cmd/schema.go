package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yaoapp/lisa/rag"
	"github.com/yaoapp/lisa/schema"
)

var defaultsSuggestID = false
var schemaCheck = ""

var defaultsCmd = &cobra.Command{
	Use:   "defaults <kind>",
	Short: L("Print the default instance of a schema"),
	Long:  L("Print the default instance of a schema"),
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defer fatal()

		node, err := schemaOf(args[0])
		if err != nil {
			color.Red(L("Fatal: %s")+"\n", err.Error())
			os.Exit(1)
		}

		defaults := schema.Defaults(node)
		if defaultsSuggestID {
			id, err := rag.NewRepositoryID()
			if err != nil {
				color.Red(L("Fatal: %s")+"\n", err.Error())
				os.Exit(1)
			}
			defaults["repositoryId"] = id
		}
		printJSON(defaults)
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema <kind>",
	Short: L("Print the JSON Schema of a model"),
	Long:  L("Print the JSON Schema of a model"),
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defer fatal()

		node, err := schemaOf(args[0])
		if err != nil {
			color.Red(L("Fatal: %s")+"\n", err.Error())
			os.Exit(1)
		}

		if schemaCheck == "" {
			printJSON(schema.Document(node))
			return
		}

		data, err := readDocument(schemaCheck)
		if err != nil {
			color.Red(L("Fatal: %s")+"\n", err.Error())
			os.Exit(1)
		}

		if err := schema.ValidateData(node, data); err != nil {
			color.Red(L("Invalid: %s")+"\n", schemaCheck)
			color.Red("  %s\n", err.Error())
			os.Exit(1)
		}
		color.Green(L("Valid: %s")+"\n", schemaCheck)
	},
}

func schemaOf(kind string) (schema.Node, error) {
	node, has := rag.Schemas[kind]
	if !has {
		return nil, fmt.Errorf(L("Unknown kind %s, expected one of: %s"), kind, strings.Join(rag.SchemaNames(), ", "))
	}
	return node, nil
}

func init() {
	defaultsCmd.PersistentFlags().BoolVarP(&defaultsSuggestID, "suggest-id", "", false, L("Suggest a repository id"))
	schemaCmd.PersistentFlags().StringVarP(&schemaCheck, "check", "c", "", L("Check a file against the exported schema"))
}
