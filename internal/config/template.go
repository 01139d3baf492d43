package config

// DefaultConfigTemplate is written by `epochline init`. It mirrors Default().
// DefaultConfigTemplate 由 `epochline init` 写出，与 Default() 保持一致。
const DefaultConfigTemplate = `# epochline configuration / epochline 配置文件
#
# The input file (birds.almost) and the output stream (stdout) are fixed.
# 输入文件（birds.almost）与输出流（stdout）固定不可配置。

# Logging / 日志
# Console logs go to stderr; stdout only carries converted records.
# 控制台日志写入 stderr；stdout 仅输出转换结果。
logging:
  enabled: false
  level: "warn"
  path: "epochline.log"
  max_size: 10
  max_backups: 3
  max_age: 30
  compress: true

# Metrics / 指标
# If set, run counters are written here in Prometheus text format.
# 如果设置，运行计数器将以 Prometheus 文本格式写入此文件。
metrics:
  textfile: ""

# Record checks / 记录检查
# Each expression must be true for every converted record, otherwise the run aborts.
# 每条表达式必须对每条转换后的记录成立，否则终止运行。
# Available: Tags, Epoch, Stamp, Line, Num, Tag(i), Count()
# checks:
#   - name: has-species
#     expr: Count() >= 1
checks: []
`
