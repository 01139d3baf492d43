// Package checks evaluates user-supplied assertions against converted records.
// Package checks 对转换后的记录执行用户配置的断言。
package checks

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	apperrors "github.com/livp123/epochline/pkg/errors"
)

// Definition is a named boolean expression as written in the config file.
// Definition 是配置文件中带名称的布尔表达式。
type Definition struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

// Env is the environment a check expression runs against.
// Env 是检查表达式的运行环境。
type Env struct {
	Tags  []string
	Epoch int64
	Stamp string
	Line  string
	Num   int
}

// Tag returns the i-th tag, or "" when out of range.
func (e Env) Tag(i int) string {
	if i < 0 || i >= len(e.Tags) {
		return ""
	}
	return e.Tags[i]
}

// Count returns the number of tags.
func (e Env) Count() int {
	return len(e.Tags)
}

// Check is a compiled Definition.
// Check 是编译后的 Definition。
type Check struct {
	Name    string
	Source  string
	Program *vm.Program
}

// Set is an ordered list of compiled checks. The zero value accepts every record.
// Set 是有序的已编译检查列表，零值接受所有记录。
type Set struct {
	checks []Check
}

// Compile compiles defs in order. Names must be unique and non-empty.
// Compile 按顺序编译 defs，名称必须唯一且非空。
func Compile(defs []Definition) (*Set, error) {
	set := &Set{}
	seen := make(map[string]bool, len(defs))

	for i, def := range defs {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			return nil, apperrors.NewConfigError(fmt.Sprintf("checks[%d].name", i), def.Name)
		}
		if seen[name] {
			return nil, apperrors.NewConfigError(fmt.Sprintf("checks[%d].name", i), name+" (duplicate)")
		}
		seen[name] = true

		src := strings.TrimSpace(def.Expr)
		if src == "" {
			return nil, apperrors.NewConfigError(fmt.Sprintf("checks[%d].expr", i), def.Expr)
		}

		program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("%w: failed to compile check '%s': %v", apperrors.ErrConfigInvalid, name, err)
		}

		set.checks = append(set.checks, Check{
			Name:    name,
			Source:  src,
			Program: program,
		})
	}
	return set, nil
}

// Len returns the number of checks.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.checks)
}

// Names returns check names in evaluation order.
// Names 按执行顺序返回检查名称。
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.checks))
	for _, c := range s.checks {
		names = append(names, c.Name)
	}
	return names
}

// Evaluate runs every check against env and returns an ErrCheckFailed error
// for the first one that does not hold. Runtime errors count as failures.
// Evaluate 依次执行检查，对首个不成立的检查返回 ErrCheckFailed，运行时错误同样视为失败。
func (s *Set) Evaluate(env Env) error {
	if s == nil {
		return nil
	}
	for _, c := range s.checks {
		output, err := expr.Run(c.Program, env)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.NewCheckError(c.Name), err)
		}
		if ok, _ := output.(bool); !ok {
			return apperrors.NewCheckError(c.Name)
		}
	}
	return nil
}
