package commands

import (
	"fmt"

	"github.com/livp123/epochline/internal/config"
	"github.com/livp123/epochline/internal/runtime"
	"github.com/livp123/epochline/internal/source"
	"github.com/livp123/epochline/internal/utils/fileutil"
	"github.com/livp123/epochline/internal/utils/logger"
	"github.com/spf13/cobra"
)

// initCmd implements the 'init' command
// initCmd 实现 'init' 命令
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	// Short: 写出默认配置文件
	Args: cobra.NoArgs,
	// The file may not exist yet, so skip loading it.
	// 配置文件可能尚不存在，因此跳过加载。
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(config.Default().Logging)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := runtime.ConfigPath
		if path == "" {
			path = config.DefaultConfigPath
		}
		if err := config.WriteDefault(path, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[OK] Configuration written to %s\n", path)
		return nil
	},
}

// checkCmd implements the 'check' command
// checkCmd 实现 'check' 命令
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and input file presence",
	// Short: 校验配置以及输入文件是否存在
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The root hook tolerates a broken default file; check must not.
		// 根命令会容忍损坏的默认配置文件，check 命令则必须报告。
		path := runtime.ConfigPath
		if path == "" {
			path = config.DefaultConfigPath
		}
		cfg := config.Default()
		if runtime.ConfigPath != "" || fileutil.Exists(path) {
			loaded, err := config.Load(path, true)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		set, err := cfg.CompileChecks()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "[OK] Configuration valid (%d checks)\n", set.Len())
		if fileutil.Exists(source.DefaultInputFile) {
			fmt.Fprintf(out, "[OK] Input file %s found\n", source.DefaultInputFile)
		} else {
			fmt.Fprintf(out, "[WARN] Input file %s not found in working directory\n", source.DefaultInputFile)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing configuration file")
}
