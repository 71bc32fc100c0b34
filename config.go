package contentgraph

import "github.com/goliatone/go-contentgraph/internal/runtimeconfig"

var (
	ErrContentDirRequired      = runtimeconfig.ErrContentDirRequired
	ErrSourcesRequired         = runtimeconfig.ErrSourcesRequired
	ErrSourcePathRequired      = runtimeconfig.ErrSourcePathRequired
	ErrSourcePathDuplicate     = runtimeconfig.ErrSourcePathDuplicate
	ErrSourceCategoryUnknown   = runtimeconfig.ErrSourceCategoryUnknown
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrMetricsTextfileRequired = runtimeconfig.ErrMetricsTextfileRequired
)

type (
	Config        = runtimeconfig.Config
	SourceConfig  = runtimeconfig.SourceConfig
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	OutputConfig  = runtimeconfig.OutputConfig
	MetricsConfig = runtimeconfig.MetricsConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML config file over the defaults. See
// runtimeconfig.Load for the .env and ${VAR} handling.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
