package commands

import (
	"time"

	"github.com/livp123/epochline/internal/converter"
	"github.com/livp123/epochline/internal/metrics"
	"github.com/livp123/epochline/internal/pipeline"
	"github.com/livp123/epochline/internal/source"
	"github.com/livp123/epochline/internal/utils/logger"
	"github.com/spf13/cobra"
)

// runConvert converts the input file to stdout.
// runConvert 将输入文件转换后输出到 stdout。
func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger.Get(ctx)
	cfg := activeConfig

	set, err := cfg.CompileChecks()
	if err != nil {
		return err
	}

	f, err := source.Open(source.DefaultInputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	m := metrics.New()
	conv := converter.New(time.Local)
	p := pipeline.New(conv, cmd.OutOrStdout()).
		WithChecks(set).
		WithMetrics(m)

	log.Debugw("converting", "input", f.Path(), "checks", set.Names(), "zone", conv.Location().String())
	_, runErr := p.Run(ctx, f)

	if cfg.Metrics.Textfile != "" {
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Warnf("[WARN] Failed to write metrics textfile %s: %v", cfg.Metrics.Textfile, err)
		}
	}
	return runErr
}
