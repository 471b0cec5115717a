package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yaoapp/lisa/config"
	"github.com/yaoapp/lisa/rag"
	"github.com/yaoapp/lisa/rag/api"
	"github.com/yaoapp/lisa/rag/types"
)

var collectionSiblings = ""
var collectionCreatedBy = ""

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: L("Collection operations"),
	Long:  L("Collection operations"),
}

var collectionCreateCmd = &cobra.Command{
	Use:   "create <repository> <form>",
	Short: L("Create a collection in a repository"),
	Long:  L("Create a collection in a repository"),
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		defer fatal()
		Boot()

		repo := mustRepository(args[0])
		form, err := readObject(args[1])
		if err != nil {
			color.Red(L("Fatal: %s")+"\n", err.Error())
			os.Exit(1)
		}

		siblings := []types.RagCollectionConfig{}
		if collectionSiblings != "" {
			siblings = mustCollections(collectionSiblings)
		}

		createdBy := collectionCreatedBy
		if createdBy == "" {
			createdBy = os.Getenv("USER")
		}

		collection, err := api.New(config.Conf.Options()).CreateCollection(&api.CreateCollectionParams{
			Collection: form,
			Repository: repo,
			Siblings:   siblings,
			CreatedBy:  createdBy,
		})
		if err != nil {
			color.Red(L("Invalid: %s")+"\n", args[1])
			printErrors(err)
			os.Exit(1)
		}
		printJSON(collection)
	},
}

var collectionResolveCmd = &cobra.Command{
	Use:   "resolve <repository> <collection>",
	Short: L("Resolve the effective collection settings"),
	Long:  L("Resolve the effective collection settings"),
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		defer fatal()

		repo := mustRepository(args[0])
		raw, err := readDocument(args[1])
		if err != nil {
			color.Red(L("Fatal: %s")+"\n", err.Error())
			os.Exit(1)
		}

		collection, err := rag.ParseCollection(raw)
		if err != nil {
			color.Red(L("Invalid: %s")+"\n", args[1])
			printErrors(err)
			os.Exit(1)
		}

		if err := api.ValidateAgainstParent(*collection, *repo); err != nil {
			color.Red(L("Invalid: %s")+"\n", args[1])
			printErrors(err)
			os.Exit(1)
		}
		printJSON(api.ResolveCollection(*collection, *repo))
	},
}

func mustRepository(file string) *types.RagRepositoryConfig {
	raw, err := readDocument(file)
	if err != nil {
		color.Red(L("Fatal: %s")+"\n", err.Error())
		os.Exit(1)
	}

	repo, err := rag.ParseRepository(raw)
	if err != nil {
		color.Red(L("Invalid: %s")+"\n", file)
		printErrors(err)
		os.Exit(1)
	}
	return repo
}

func mustCollections(file string) []types.RagCollectionConfig {
	doc, err := readDocument(file)
	if err != nil {
		color.Red(L("Fatal: %s")+"\n", err.Error())
		os.Exit(1)
	}

	list, ok := doc.([]interface{})
	if !ok {
		color.Red(L("Invalid: %s")+"\n", file)
		os.Exit(1)
	}

	res := make([]types.RagCollectionConfig, 0, len(list))
	for _, item := range list {
		collection, err := rag.ParseCollection(item)
		if err != nil {
			color.Red(L("Invalid: %s")+"\n", file)
			printErrors(err)
			os.Exit(1)
		}
		res = append(res, *collection)
	}
	return res
}

func init() {
	collectionCreateCmd.PersistentFlags().StringVarP(&collectionSiblings, "siblings", "s", "", L("Sibling collections file"))
	collectionCreateCmd.PersistentFlags().StringVarP(&collectionCreatedBy, "created-by", "u", "", L("Creator"))
	collectionCmd.AddCommand(collectionCreateCmd, collectionResolveCmd)
}
