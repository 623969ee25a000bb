package domain

import "time"

const MaxRecentSearches = 10

type UserPreferences struct {
	DefaultStoreID string `json:"default_store_id"`
	PageSize       int    `json:"page_size"`
	Theme          string `json:"theme"`
	ShowInactive   bool   `json:"show_inactive"`
}

func DefaultUserPreferences() UserPreferences {
	return UserPreferences{
		PageSize: 25,
		Theme:    "light",
	}
}

// PreferenceChange é publicado a cada escrita para sincronizar outras abas e instâncias
type PreferenceChange struct {
	Namespace string    `json:"namespace"`
	Key       string    `json:"key"`
	Value     []byte    `json:"value,omitempty"`
	Deleted   bool      `json:"deleted"`
	Origin    string    `json:"origin"`
	At        time.Time `json:"at"`
}
