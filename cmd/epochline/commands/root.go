package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/livp123/epochline/internal/config"
	"github.com/livp123/epochline/internal/runtime"
	"github.com/livp123/epochline/internal/source"
	"github.com/livp123/epochline/internal/utils/logger"
	"github.com/spf13/cobra"
)

// activeConfig is the configuration loaded by PersistentPreRunE.
// activeConfig 是 PersistentPreRunE 加载的配置。
var activeConfig = config.Default()

var RootCmd = &cobra.Command{
	Use:   "epochline",
	Short: "Rewrite record date-times as Unix epoch timestamps",
	// Short: 将记录中的日期时间改写为 Unix 时间戳
	Long: `epochline reads ` + source.DefaultInputFile + ` from the working directory and prints each
record with its trailing date and time fields replaced by one Unix epoch timestamp
(local time). The first malformed line aborts the run.
epochline 读取工作目录下的 ` + source.DefaultInputFile + `，将每条记录末尾的日期与时间字段
替换为一个 Unix 时间戳（本地时间）并输出。遇到第一条格式错误的行即终止运行。`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration to get logging settings
		// 加载配置以获取日志设置
		explicit := runtime.ConfigPath != ""
		cfgPath := runtime.ConfigPath
		if cfgPath == "" {
			cfgPath = config.DefaultConfigPath
		}

		cfg, err := config.Load(cfgPath, explicit)
		if err != nil {
			logger.Init(config.Default().Logging)
			if explicit {
				return err
			}
			// A stray ./epochline.yaml must not block the conversion; use defaults.
			// 工作目录下损坏的默认配置不应阻止转换，使用默认配置继续。
			logger.Get(nil).Warnf("[WARN] Ignoring %s: %v", cfgPath, err)
			cfg = config.Default()
		} else {
			logger.Init(cfg.Logging)
		}
		activeConfig = cfg

		// Inject logger into context
		// 将 Logger 注入 Context
		cmd.SetContext(logger.WithContext(cmd.Context(), logger.Get(nil)))
		return nil
	},
	RunE: runConvert,
}

func init() {
	// Config file path
	// 配置文件路径
	RootCmd.PersistentFlags().StringVarP(&runtime.ConfigPath, "config", "c", "",
		fmt.Sprintf("Path to configuration file (default: ./%s, optional)", config.DefaultConfigPath))

	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(checkCmd)

	RootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Execute runs the root command and exits non-zero on failure.
// Execute 执行根命令，失败时以非零状态退出。
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
