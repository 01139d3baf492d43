package config

const (
	// DefaultConfigPath is the config file looked up in the working directory.
	// DefaultConfigPath 是在工作目录中查找的配置文件。
	DefaultConfigPath = "epochline.yaml"

	// DefaultLogPath is used when file logging is enabled without a path.
	// DefaultLogPath 是启用文件日志但未指定路径时使用的路径。
	DefaultLogPath = "epochline.log"
)
