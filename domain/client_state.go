package domain

import "context"

// Persisted keys, kept compatible with what the browser client stored.
const (
	KeyAuthToken      = "blog_auth_token"
	KeyTheme          = "theme"
	KeyLanguage       = "blog_language"
	KeyLikeMarkPrefix = "douzhan-post-liked-"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeCream Theme = "cream"
)

// Next returns the theme that follows t in the toggle cycle light, cream, dark.
func (t Theme) Next() Theme {
	switch t {
	case ThemeLight:
		return ThemeCream
	case ThemeCream:
		return ThemeDark
	default:
		return ThemeLight
	}
}

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeCream
}

type Language string

const (
	LanguageZH Language = "zh"
	LanguageEN Language = "en"
)

// ResolveLanguage maps any input onto a supported language, zh being the fallback.
func ResolveLanguage(s string) Language {
	if s == string(LanguageEN) {
		return LanguageEN
	}
	return LanguageZH
}

// KVStore is the key-value store surviving reloads. Get returns ErrCacheMiss for an
// absent key.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ClientStateRepository is the typed view over the persisted client state.
type ClientStateRepository interface {
	Token(ctx context.Context) string
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error

	// Theme returns the stored theme, false when nothing valid is stored.
	Theme(ctx context.Context) (Theme, bool)
	SetTheme(ctx context.Context, t Theme) error

	// Language returns the stored language, false when nothing is stored.
	Language(ctx context.Context) (Language, bool)
	SetLanguage(ctx context.Context, l Language) error

	IsLiked(ctx context.Context, postID string) (bool, error)
	MarkLiked(ctx context.Context, postID string) error
	UnmarkLiked(ctx context.Context, postID string) error
}
