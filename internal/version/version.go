package version

// Version is the release version, set at build time with
// -ldflags "-X github.com/livp123/epochline/internal/version.Version=v1.2.3".
// Version 为发布版本号，构建时通过 ldflags 设置。
var Version = "dev"
