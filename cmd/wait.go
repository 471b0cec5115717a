package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yaoapp/lisa/config"
	"github.com/yaoapp/lisa/rag"
	"github.com/yaoapp/lisa/rag/api"
	"github.com/yaoapp/lisa/rag/types"
)

var waitTimeout time.Duration

var waitCmd = &cobra.Command{
	Use:   "wait <repository>",
	Short: L("Wait until the repository deployment finishes"),
	Long:  L("Wait until the repository deployment finishes"),
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defer fatal()
		Boot()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if waitTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, waitTimeout)
			defer cancel()
		}

		status, err := api.New(config.Conf.Options()).WaitForStatus(ctx, fileStatus(args[0]))
		if err != nil {
			color.Red(L("Fatal: %s")+"\n", err.Error())
			os.Exit(1)
		}
		color.Green(L("Status: %s")+"\n", status)
	},
}

// fileStatus reads the status of the repository stored in file
func fileStatus(file string) api.StatusFunc {
	return func() (types.VectorStoreStatus, error) {
		raw, err := readDocument(file)
		if err != nil {
			return types.StatusUnknown, err
		}
		repo, err := rag.ParseRepository(raw)
		if err != nil {
			return types.StatusUnknown, err
		}
		return repo.Status, nil
	}
}

func init() {
	waitCmd.PersistentFlags().DurationVarP(&waitTimeout, "timeout", "t", 0, L("Give up after this duration"))
}
