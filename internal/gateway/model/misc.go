package model

import "github.com/Guyuepp/blog-client/domain"

type Config struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

func (m *Config) ToDomain() domain.Config {
	return domain.Config{Key: m.Key, Value: m.Value, Type: domain.ConfigType(m.Type)}
}

type ConfigUpdate struct {
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

type UploadedAsset struct {
	OriginalName string `json:"original_name"`
	URL          string `json:"url"`
	RelativePath string `json:"relative_path"`
	Size         int64  `json:"size"`
}

func (m *UploadedAsset) ToDomain() domain.UploadedAsset {
	return domain.UploadedAsset{
		OriginalName: m.OriginalName,
		URL:          m.URL,
		RelativePath: m.RelativePath,
		Size:         m.Size,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type SessionResult struct {
	LoggedIn bool    `json:"logged_in"`
	Username *string `json:"username"`
}
