package converter

import (
	"strconv"
	"strings"
)

// Record is one parsed input line. It does not outlive the line it came from.
// Record 是解析后的一行输入，仅在处理该行期间存在。
type Record struct {
	// Tags are all tokens except the trailing date and time.
	Tags []string
	// Stamp is "<date> <time><suffix>" rebuilt from the last two tokens.
	Stamp string
	// Epoch is Stamp, minus its suffix, as seconds since the Unix epoch.
	Epoch int64
}

// String renders the output line: the tags joined by single spaces, one space,
// then the epoch. A record without tags renders as " <epoch>".
// String 生成输出行：标签以单个空格连接，再加一个空格和时间戳。
func (r Record) String() string {
	return strings.Join(r.Tags, " ") + " " + strconv.FormatInt(r.Epoch, 10)
}
