package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yaoapp/lisa/rag"
	"github.com/yaoapp/lisa/share"
)

var versionAll bool
var versionJSON bool

// buildVersion what `lisa version --all` reports
type buildVersion struct {
	Version   string   `json:"version"`
	GoVersion string   `json:"goVersion"`
	Commit    string   `json:"commit"`
	Built     string   `json:"built,omitempty"`
	Platform  string   `json:"platform"`
	Schemas   []string `json:"schemas"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: L("Show version"),
	Long:  L("Show version"),
	Run: func(cmd *cobra.Command, args []string) {
		if !versionAll && !versionJSON {
			fmt.Println(share.VERSION)
			return
		}

		info := currentVersion(share.PRVERSION)
		if versionJSON {
			printJSON(info)
			return
		}
		fmt.Printf("Version:     %s\n", info.Version)
		fmt.Printf("Go version:  %s\n", info.GoVersion)
		fmt.Printf("Git commit:  %s\n", info.Commit)
		if info.Built != "" {
			fmt.Printf("Built:       %s\n", info.Built)
		}
		fmt.Printf("OS/Arch:     %s\n", info.Platform)
		fmt.Printf("Schemas:     %s\n", strings.Join(info.Schemas, ", "))
	},
}

// currentVersion splits the release stamp "<commit>-<time>". Development builds fall
// back to the vcs revision recorded by the go tool.
func currentVersion(stamp string) buildVersion {
	info := buildVersion{
		Version:   share.VERSION,
		GoVersion: runtime.Version(),
		Commit:    stamp,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Schemas:   rag.SchemaNames(),
	}

	if commit, built, ok := strings.Cut(stamp, "-"); ok {
		info.Commit, info.Built = commit, built
		return info
	}

	if build, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range build.Settings {
			switch setting.Key {
			case "vcs.revision":
				info.Commit = setting.Value
			case "vcs.time":
				info.Built = setting.Value
			}
		}
	}
	return info
}

func init() {
	versionCmd.PersistentFlags().BoolVarP(&versionAll, "all", "", false, L("Print all version information"))
	versionCmd.PersistentFlags().BoolVarP(&versionJSON, "json", "", false, L("Print as JSON"))
}
