package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yaoapp/lisa/config"
	"github.com/yaoapp/lisa/rag"
	"github.com/yaoapp/lisa/rag/api"
)

var legacyCmd = &cobra.Command{
	Use:   "legacy [file]",
	Short: L("Load statically provisioned repositories"),
	Long:  L("Load statically provisioned repositories"),
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defer fatal()
		Boot()

		file := config.Conf.Rag.LegacyFile
		if len(args) > 0 {
			file = args[0]
		}
		if file == "" {
			color.Red(L("Fatal: %s")+"\n", "LISA_RAG_LEGACY_FILE is not set")
			os.Exit(1)
		}

		repos, err := rag.LoadLegacyRepositories(file)
		for _, repo := range repos {
			fmt.Println(color.GreenString("%s", repo.RepositoryID), color.WhiteString("(%s)", repo.Type), fmt.Sprintf(L("Delete mode: %s"), api.DeleteModeFor(repo)))
		}

		if err != nil {
			color.Red(L("Invalid: %s")+"\n", file)
			printErrors(err)
			os.Exit(1)
		}
	},
}
