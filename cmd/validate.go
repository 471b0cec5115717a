package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/lisa/share"
)

var validateWatch = false
var validateQuiet = false

var validateCmd = &cobra.Command{
	Use:   "validate <kind> <file>",
	Short: L("Validate a configuration file"),
	Long:  L("Validate a configuration file"),
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		defer fatal()
		Boot()

		kind, file := args[0], args[1]
		ok := runValidate(kind, file)
		if !validateWatch {
			if !ok {
				os.Exit(1)
			}
			return
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := share.Watch(ctx, []string{file}, func(op string, name string) {
			log.Trace("[Validate] %s %s", op, name)
			runValidate(kind, name)
		})
		if err != nil {
			color.Red(L("Fatal: %s")+"\n", err.Error())
			os.Exit(1)
		}
	},
}

func runValidate(kind string, file string) bool {
	value, err := parseFile(kind, file)
	if err != nil {
		color.Red(L("Invalid: %s")+"\n", file)
		printErrors(err)
		return false
	}

	color.Green(L("Valid: %s")+"\n", file)
	if !validateQuiet {
		printJSON(value)
	}
	return true
}

func init() {
	validateCmd.PersistentFlags().BoolVarP(&validateWatch, "watch", "w", false, L("Watch the file and validate on change"))
	validateCmd.PersistentFlags().BoolVarP(&validateQuiet, "quiet", "q", false, "Do not print the parsed value")
}
