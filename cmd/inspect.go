package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yaoapp/kun/maps"
	"github.com/yaoapp/kun/utils"
	"github.com/yaoapp/lisa/config"
	"github.com/yaoapp/lisa/rag"
	"github.com/yaoapp/lisa/share"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: L("Show configure"),
	Long:  L("Show configure"),
	Run: func(cmd *cobra.Command, args []string) {
		Boot()
		res := maps.Map{
			"version": share.VERSION,
			"config":  config.Conf,
			"schemas": rag.SchemaNames(),
		}
		utils.Dump(res)
	},
}
