package converter

import (
	"fmt"
	"time"

	apperrors "github.com/livp123/epochline/pkg/errors"
)

const (
	// Layout is the only accepted date-time shape once the suffix is dropped.
	// Layout 是去掉后缀后唯一接受的日期时间格式。
	Layout = "2006-01-02 15:04:05"

	// SuffixLen is how many trailing characters of the stamp are discarded
	// before parsing, whatever they contain.
	// SuffixLen 是解析前无条件丢弃的时间戳末尾字符数。
	SuffixLen = 4
)

// Converter rewrites record lines, replacing the trailing date and time with
// an epoch timestamp.
// Converter 将记录行末尾的日期和时间替换为 Unix 时间戳。
type Converter struct {
	tokenizer *Tokenizer
	location  *time.Location
}

// New creates a Converter interpreting stamps in loc. A nil loc means the
// process local zone.
// New 创建在 loc 时区解析时间的 Converter，loc 为 nil 时使用本地时区。
func New(loc *time.Location) *Converter {
	if loc == nil {
		loc = time.Local
	}
	return &Converter{
		tokenizer: NewTokenizer(),
		location:  loc,
	}
}

// Location returns the zone stamps are interpreted in.
// Location 返回解析时间戳所用的时区。
func (c *Converter) Location() *time.Location {
	return c.location
}

// Parse splits line into a Record.
// Parse 将一行拆分为 Record。
func (c *Converter) Parse(line string) (Record, error) {
	tokens := c.tokenizer.Tokenize(line)
	if len(tokens) < 2 {
		return Record{}, apperrors.NewRecordError(len(tokens))
	}

	n := len(tokens)
	stamp := tokens[n-2] + " " + tokens[n-1]

	epoch, err := c.Epoch(stamp)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Tags:  tokens[:n-2],
		Stamp: stamp,
		Epoch: epoch,
	}, nil
}

// Convert returns the output line for line.
// Convert 返回该行对应的输出行。
func (c *Converter) Convert(line string) (string, error) {
	rec, err := c.Parse(line)
	if err != nil {
		return "", err
	}
	return rec.String(), nil
}

// Epoch drops the suffix from stamp and parses the rest strictly.
// Epoch 去掉时间戳后缀，并严格解析剩余部分。
func (c *Converter) Epoch(stamp string) (int64, error) {
	value := TrimSuffix(stamp)

	// time.Parse alone accepts a one-digit hour and a signed year.
	if !hasShape(value) {
		return 0, apperrors.NewFormatError(value, fmt.Errorf("want YYYY-MM-DD HH:MM:SS"))
	}

	t, err := time.ParseInLocation(Layout, value, c.location)
	if err != nil {
		return 0, apperrors.NewFormatError(value, err)
	}
	return t.Unix(), nil
}

// TrimSuffix removes the last SuffixLen characters of s. Shorter strings
// become empty.
// TrimSuffix 删除 s 末尾 SuffixLen 个字符，更短的字符串变为空串。
func TrimSuffix(s string) string {
	runes := []rune(s)
	if len(runes) <= SuffixLen {
		return ""
	}
	return string(runes[:len(runes)-SuffixLen])
}

// hasShape reports whether value has a digit wherever Layout has one and the
// same separators everywhere else.
func hasShape(value string) bool {
	if len(value) != len(Layout) {
		return false
	}
	for i := 0; i < len(Layout); i++ {
		l, v := Layout[i], value[i]
		if l >= '0' && l <= '9' {
			if v < '0' || v > '9' {
				return false
			}
		} else if l != v {
			return false
		}
	}
	return true
}
