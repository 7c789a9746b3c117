package snippet

import "github.com/goliatone/go-snippet/internal/runtimeconfig"

var (
	ErrRootDirRequired        = runtimeconfig.ErrRootDirRequired
	ErrRootDirNotAbsolute     = runtimeconfig.ErrRootDirNotAbsolute
	ErrReaderCacheSizeInvalid = runtimeconfig.ErrReaderCacheSizeInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
