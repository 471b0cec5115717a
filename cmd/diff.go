package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yaoapp/lisa/config"
	"github.com/yaoapp/lisa/diff"
	"github.com/yaoapp/lisa/rag"
	"github.com/yaoapp/lisa/rag/api"
)

var diffCmd = &cobra.Command{
	Use:   "diff <baseline> <updated>",
	Short: L("Compute the PATCH payload between two files"),
	Long:  L("Compute the PATCH payload between two files"),
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		defer fatal()

		baseline, err := readDocument(args[0])
		if err != nil {
			color.Red(L("Fatal: %s")+"\n", err.Error())
			os.Exit(1)
		}
		updated, err := readDocument(args[1])
		if err != nil {
			color.Red(L("Fatal: %s")+"\n", err.Error())
			os.Exit(1)
		}

		patch, err := diff.Diff(baseline, updated)
		if err != nil {
			color.Red(L("Fatal: %s")+"\n", err.Error())
			os.Exit(1)
		}

		if len(patch) == 0 {
			color.Green(L("No changes") + "\n")
			return
		}
		printJSON(patch)
	},
}

var patchCmd = &cobra.Command{
	Use:   "patch <repository> <form>",
	Short: L("Build a repository update from a form"),
	Long:  L("Build a repository update from a form"),
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		defer fatal()
		Boot()

		raw, err := readDocument(args[0])
		if err != nil {
			color.Red(L("Fatal: %s")+"\n", err.Error())
			os.Exit(1)
		}

		baseline, err := rag.ParseRepository(raw)
		if err != nil {
			color.Red(L("Invalid: %s")+"\n", args[0])
			printErrors(err)
			os.Exit(1)
		}

		form, err := readObject(args[1])
		if err != nil {
			color.Red(L("Fatal: %s")+"\n", err.Error())
			os.Exit(1)
		}

		update, err := api.New(config.Conf.Options()).BuildRepositoryUpdate(*baseline, form)
		if err != nil {
			color.Red(L("Invalid: %s")+"\n", args[1])
			printErrors(err)
			os.Exit(1)
		}

		if len(update.Patch) == 0 {
			color.Green(L("No changes") + "\n")
			return
		}
		printJSON(update.Patch)
	},
}
