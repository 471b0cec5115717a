package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yaoapp/kun/exception"
	"github.com/yaoapp/lisa/config"
	"github.com/yaoapp/lisa/share"
)

var appPath string
var envFile string

var lang = os.Getenv("LISA_LANG")
var langs = map[string]string{
	"RAG configuration toolkit":                     "RAG 配置工具",
	"One or more arguments are not correct":         "参数错误",
	"Working directory":                             "指定工作目录",
	"Environment file":                              "指定环境变量文件",
	"Show configure":                                "显示配置信息",
	"Show version":                                  "显示当前版本号",
	"Print all version information":                 "显示全部版本信息",
	"Print as JSON":                                 "以 JSON 格式输出",
	"Validate a configuration file":                 "校验配置文件",
	"Watch the file and validate on change":         "监听文件变化并重新校验",
	"Print the default instance of a schema":        "显示默认配置",
	"Suggest a repository id":                       "生成仓库 ID",
	"Print the JSON Schema of a model":              "显示 JSON Schema",
	"Check a file against the exported schema":      "使用导出的 Schema 校验文件",
	"Compute the PATCH payload between two files":   "计算两个文件的差异",
	"Build a repository update from a form":         "根据表单生成仓库更新",
	"Collection operations":                         "集合操作",
	"Create a collection in a repository":           "在仓库中创建集合",
	"Resolve the effective collection settings":     "计算集合的生效配置",
	"Load statically provisioned repositories":      "加载静态配置的仓库",
	"Repository file":                               "仓库配置文件",
	"Sibling collections file":                      "同级集合文件",
	"Creator":                                       "创建人",
	"Fatal: %s":                                     "失败: %s",
	"Valid: %s":                                     "校验通过: %s",
	"Invalid: %s":                                   "校验失败: %s",
	"Unknown kind %s, expected one of: %s":          "未知类型 %s, 可选: %s",
	"No changes":                                    "没有变更",
	"Delete mode: %s":                               "删除方式: %s",
	"Wait until the repository deployment finishes": "等待仓库部署完成",
	"Give up after this duration":                   "超时时间",
	"Status: %s":                                    "状态: %s",
}

// L Language switch
func L(words string) string {
	if lang == "" {
		return words
	}

	if trans, has := langs[words]; has {
		return trans
	}
	return words
}

var rootCmd = &cobra.Command{
	Use:   share.BUILDNAME,
	Short: L("RAG configuration toolkit"),
	Long:  L("RAG configuration toolkit"),
	Args:  cobra.MinimumNArgs(1),
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(os.Stderr, L("One or more arguments are not correct"), args)
		os.Exit(1)
	},
}

// Load commands
func init() {
	rootCmd.AddCommand(
		versionCmd,
		inspectCmd,
		validateCmd,
		defaultsCmd,
		schemaCmd,
		diffCmd,
		patchCmd,
		collectionCmd,
		legacyCmd,
		waitCmd,
	)
	rootCmd.PersistentFlags().StringVarP(&appPath, "root", "r", "", L("Working directory"))
	rootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", "", L("Environment file"))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Boot loads the configuration
func Boot() {
	root := "."
	if appPath != "" {
		r, err := filepath.Abs(appPath)
		if err != nil {
			exception.New("Root error %s", 500, err.Error()).Throw()
		}
		root = r
		os.Setenv("LISA_ROOT", root)
	}

	if envFile != "" {
		config.Conf = config.LoadFrom(envFile)
	} else {
		config.Init(root)
		return
	}

	if config.Conf.Mode == "development" {
		config.Development()
		return
	}
	config.Production()
}
