package models

// Theme is the reader's colour scheme choice
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ValidThemes defines allowed theme values
var ValidThemes = map[Theme]bool{
	ThemeLight:  true,
	ThemeDark:   true,
	ThemeSystem: true,
}

// Preference keys
const (
	PreferenceTheme               = "theme"
	PreferenceNewsletterDismissed = "newsletter_dismissed"
)

// Preferences is the full set of stored reader preferences
type Preferences struct {
	ClientID            string `json:"client_id"`
	Theme               Theme  `json:"theme"`
	NewsletterDismissed bool   `json:"newsletter_dismissed"`
}
