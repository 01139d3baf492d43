// Package pipeline runs the line conversion over an input source.
// Package pipeline 对输入源逐行执行转换。
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/livp123/epochline/internal/checks"
	"github.com/livp123/epochline/internal/converter"
	"github.com/livp123/epochline/internal/metrics"
	"github.com/livp123/epochline/internal/utils/logger"
	apperrors "github.com/livp123/epochline/pkg/errors"
)

// LineSource delivers input lines in order with 1-based numbers.
// LineSource 按顺序提供输入行，行号从 1 开始。
type LineSource interface {
	Each(ctx context.Context, fn func(num int, text string) error) error
}

// Stats summarizes a run.
// Stats 汇总一次运行的结果。
type Stats struct {
	Lines      int
	Converted  int
	FirstEpoch int64
	LastEpoch  int64
}

// Pipeline converts every line of a source and writes one output line per
// input line. The first failing line aborts the run.
// Pipeline 转换输入源的每一行，每个输入行输出一行，首个失败行即中止运行。
type Pipeline struct {
	conv    *converter.Converter
	checks  *checks.Set
	metrics *metrics.Collector
	out     io.Writer
}

// New creates a Pipeline writing to out.
// New 创建输出到 out 的 Pipeline。
func New(conv *converter.Converter, out io.Writer) *Pipeline {
	return &Pipeline{
		conv: conv,
		out:  out,
	}
}

// WithChecks sets the record checks evaluated after each conversion.
// WithChecks 设置每次转换后执行的记录检查。
func (p *Pipeline) WithChecks(set *checks.Set) *Pipeline {
	p.checks = set
	return p
}

// WithMetrics sets the collector updated during the run.
// WithMetrics 设置运行期间更新的指标收集器。
func (p *Pipeline) WithMetrics(m *metrics.Collector) *Pipeline {
	p.metrics = m
	return p
}

// Run processes src until it is exhausted or a line fails. Lines written
// before a failure stay written; nothing is written for the failing line.
// Run 处理 src 直到读完或某行失败。失败前已写出的行保留，失败行不输出任何内容。
func (p *Pipeline) Run(ctx context.Context, src LineSource) (Stats, error) {
	log := logger.Get(ctx)
	start := time.Now()

	var stats Stats
	err := src.Each(ctx, func(num int, text string) error {
		stats.Lines++
		if p.metrics != nil {
			p.metrics.LinesRead.Inc()
		}

		rec, err := p.conv.Parse(text)
		if err == nil {
			err = p.checks.Evaluate(checks.Env{
				Tags:  rec.Tags,
				Epoch: rec.Epoch,
				Stamp: rec.Stamp,
				Line:  text,
				Num:   num,
			})
		}
		if err != nil {
			return apperrors.NewLineError(num, err)
		}

		if _, err := io.WriteString(p.out, rec.String()+"\n"); err != nil {
			return apperrors.NewLineError(num, fmt.Errorf("write output: %w", err))
		}

		if stats.Converted == 0 {
			stats.FirstEpoch = rec.Epoch
		}
		stats.Converted++
		stats.LastEpoch = rec.Epoch
		if p.metrics != nil {
			p.metrics.ObserveConverted(rec.Epoch)
		}
		return nil
	})

	elapsed := time.Since(start)
	if p.metrics != nil {
		p.metrics.ObserveDuration(elapsed)
	}

	if err != nil {
		reason := apperrors.Reason(err)
		if p.metrics != nil {
			p.metrics.ObserveError(reason)
		}
		var lineErr *apperrors.LineError
		if errors.As(err, &lineErr) {
			log.Errorw("conversion aborted", "line", lineErr.Num, "reason", reason, "error", lineErr.Err)
		} else {
			log.Errorw("conversion aborted", "reason", reason, "error", err)
		}
		return stats, err
	}

	log.Debugw("conversion finished", "lines", stats.Lines, "converted", stats.Converted, "elapsed", elapsed)
	return stats, nil
}
