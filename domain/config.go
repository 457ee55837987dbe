package domain

import "context"

type ConfigType string

const (
	ConfigWebsiteSettings ConfigType = "WEBSITE_SETTINGS"
	ConfigPersonalInfo    ConfigType = "PERSONAL_INFO"
)

// Well known config keys read by the client.
const (
	ConfigKeyLanguage    = "language"
	ConfigKeyAuthorName  = "author_name"
	ConfigKeyAuthorTitle = "author_title"
)

// Config is a site setting stored server side.
type Config struct {
	Key   string
	Value string
	Type  ConfigType
}

type ConfigGateway interface {
	FetchConfigs(ctx context.Context) ([]Config, error)
	UpdateConfig(ctx context.Context, key, value string, typ ConfigType) (Config, error)
}

// LookupConfig returns the value of key in configs.
func LookupConfig(configs []Config, key string) (string, bool) {
	for _, c := range configs {
		if c.Key == key {
			return c.Value, true
		}
	}
	return "", false
}
