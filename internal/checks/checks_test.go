package checks

import (
	"testing"

	apperrors "github.com/livp123/epochline/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEnv() Env {
	return Env{
		Tags:  []string{"robin", "42.3", "-71.1"},
		Epoch: 1584282600,
		Stamp: "2020-03-15 14:30:00.123",
		Line:  "robin 42.3 -71.1 2020-03-15 14:30:00.123",
		Num:   1,
	}
}

// TestEnv_Tag tests Env Tag method
// TestEnv_Tag 测试 Env Tag 方法
func TestEnv_Tag(t *testing.T) {
	env := sampleEnv()
	assert.Equal(t, "robin", env.Tag(0))
	assert.Equal(t, "-71.1", env.Tag(2))
	assert.Equal(t, "", env.Tag(3))
	assert.Equal(t, "", env.Tag(-1))
	assert.Equal(t, 3, env.Count())
}

// TestCompile_Evaluate tests compiling and evaluating checks
// TestCompile_Evaluate 测试编译与执行检查
func TestCompile_Evaluate(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		passes bool
	}{
		{"tag count", "Count() == 3", true},
		{"first tag", `Tag(0) == "robin"`, true},
		{"epoch range", "Epoch > 0 && Epoch < 2000000000", true},
		{"stamp suffix", `Stamp endsWith ".123"`, true},
		{"line number", "Num == 1", true},
		{"tags membership", `"sparrow" in Tags`, false},
		{"future", "Epoch > 2000000000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Compile([]Definition{{Name: tt.name, Expr: tt.expr}})
			require.NoError(t, err)
			require.Equal(t, 1, set.Len())

			err = set.Evaluate(sampleEnv())
			if tt.passes {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrCheckFailed)
				assert.Contains(t, err.Error(), tt.name)
			}
		})
	}
}

// TestEvaluate_FirstFailureWins tests that evaluation stops at the first failing check
// TestEvaluate_FirstFailureWins 测试第一个失败的检查即终止
func TestEvaluate_FirstFailureWins(t *testing.T) {
	set, err := Compile([]Definition{
		{Name: "ok", Expr: "true"},
		{Name: "first", Expr: "false"},
		{Name: "second", Expr: "false"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ok", "first", "second"}, set.Names())

	err = set.Evaluate(sampleEnv())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first")
	assert.NotContains(t, err.Error(), "second")
}

// TestCompile_Errors tests invalid definitions
// TestCompile_Errors 测试无效的检查定义
func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
	}{
		{"empty name", []Definition{{Name: " ", Expr: "true"}}},
		{"empty expr", []Definition{{Name: "a", Expr: ""}}},
		{"duplicate", []Definition{{Name: "a", Expr: "true"}, {Name: "a", Expr: "true"}}},
		{"syntax", []Definition{{Name: "a", Expr: "Count( =="}}},
		{"not bool", []Definition{{Name: "a", Expr: "Epoch + 1"}}},
		{"unknown field", []Definition{{Name: "a", Expr: "Species == 1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.defs)
			assert.ErrorIs(t, err, apperrors.ErrConfigInvalid)
		})
	}
}

// TestNilSet tests that a nil set accepts everything
// TestNilSet 测试 nil 集合接受所有记录
func TestNilSet(t *testing.T) {
	var set *Set
	assert.NoError(t, set.Evaluate(sampleEnv()))
	assert.Equal(t, 0, set.Len())
	assert.Nil(t, set.Names())

	empty, err := Compile(nil)
	require.NoError(t, err)
	assert.NoError(t, empty.Evaluate(Env{}))
}
