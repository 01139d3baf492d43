package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/livp123/epochline/internal/checks"
	"github.com/livp123/epochline/internal/converter"
	"github.com/livp123/epochline/internal/metrics"
	"github.com/livp123/epochline/internal/source"
	apperrors "github.com/livp123/epochline/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceSource is an in-memory LineSource.
type sliceSource []string

func (s sliceSource) Each(ctx context.Context, fn func(num int, text string) error) error {
	for i, line := range s {
		if err := fn(i+1, line); err != nil {
			return err
		}
	}
	return nil
}

func newPipeline(buf *bytes.Buffer) *Pipeline {
	return New(converter.New(time.UTC), buf)
}

// TestRun_Scenarios tests the documented conversions end to end
// TestRun_Scenarios 测试端到端转换示例
func TestRun_Scenarios(t *testing.T) {
	var buf bytes.Buffer
	src := sliceSource{
		"robin 42.3 -71.1 2020-03-15 14:30:00.123",
		"sparrow 2019-01-01 00:00:00.000",
		"2021-06-01 12:00:00.999",
	}

	stats, err := newPipeline(&buf).Run(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, "robin 42.3 -71.1 1584282600\nsparrow 1546300800\n 1622548800\n", buf.String())
	assert.Equal(t, Stats{Lines: 3, Converted: 3, FirstEpoch: 1584282600, LastEpoch: 1622548800}, stats)
}

// TestRun_AbortsOnMalformed tests that a malformed line stops the run
// TestRun_AbortsOnMalformed 测试格式错误的行会终止运行
func TestRun_AbortsOnMalformed(t *testing.T) {
	tests := []struct {
		name    string
		bad     string
		wantErr error
	}{
		{"one token", "onlyonetoken", apperrors.ErrMalformedRecord},
		{"empty line", "", apperrors.ErrMalformedRecord},
		{"invalid date", "hawk 2021-13-40 99:99:99.000", apperrors.ErrFormatMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			src := sliceSource{
				"sparrow 2019-01-01 00:00:00.000",
				tt.bad,
				"robin 2020-03-15 14:30:00.123",
			}

			stats, err := newPipeline(&buf).Run(context.Background(), src)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var lineErr *apperrors.LineError
			require.True(t, errors.As(err, &lineErr))
			assert.Equal(t, 2, lineErr.Num)

			// Output written before the failure is kept, nothing after it.
			// 失败前已写出的内容保留，之后不再输出。
			assert.Equal(t, "sparrow 1546300800\n", buf.String())
			assert.Equal(t, 2, stats.Lines)
			assert.Equal(t, 1, stats.Converted)
		})
	}
}

// TestRun_Checks tests that a failing check aborts like a parse error
// TestRun_Checks 测试检查失败与解析错误一样终止运行
func TestRun_Checks(t *testing.T) {
	set, err := checks.Compile([]checks.Definition{
		{Name: "has-species", Expr: "Count() >= 1"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	src := sliceSource{
		"sparrow 2019-01-01 00:00:00.000",
		"2021-06-01 12:00:00.999",
	}

	_, err = newPipeline(&buf).WithChecks(set).Run(context.Background(), src)
	assert.ErrorIs(t, err, apperrors.ErrCheckFailed)
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, "sparrow 1546300800\n", buf.String())
}

// TestRun_Metrics tests metric updates on success and failure
// TestRun_Metrics 测试成功与失败时的指标更新
func TestRun_Metrics(t *testing.T) {
	m := metrics.New()
	var buf bytes.Buffer
	src := sliceSource{
		"sparrow 2019-01-01 00:00:00.000",
		"crow 2019-01-01 00:00:01.000",
		"onlyonetoken",
	}

	_, err := newPipeline(&buf).WithMetrics(m).Run(context.Background(), src)
	require.Error(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.LinesRead))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LinesConverted))
	assert.Equal(t, 1546300801.0, testutil.ToFloat64(m.LastEpoch))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LineErrors.WithLabelValues("malformed")))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

// TestRun_WriteError tests that an output error aborts the run
// TestRun_WriteError 测试写出错误会终止运行
func TestRun_WriteError(t *testing.T) {
	p := New(converter.New(time.UTC), failingWriter{})
	stats, err := p.Run(context.Background(), sliceSource{"sparrow 2019-01-01 00:00:00.000"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.Equal(t, 0, stats.Converted)
}

// TestRun_File tests a run over a real input file
// TestRun_File 测试对真实输入文件的运行
func TestRun_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), source.DefaultInputFile)
	content := "robin 42.3 -71.1 2020-03-15 14:30:00.123\n" +
		"sparrow   2019-01-01 00:00:00.000\n" +
		"hawk 2021-13-40 99:99:99.000\n" +
		"jay 2019-01-01 00:00:00.000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	f, err := source.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var buf bytes.Buffer
	_, err = newPipeline(&buf).Run(context.Background(), f)
	assert.ErrorIs(t, err, apperrors.ErrFormatMismatch)
	assert.Equal(t, "robin 42.3 -71.1 1584282600\nsparrow 1546300800\n", buf.String())
}
