package version

// Version is stamped into the binary at build time:
// go build -ldflags "-X github.com/bookchain/bookchain/pkg/version.Version=1.0.0".
var Version = "dev"
