package models

// Profile is a customer profile fetched from the directory service during
// owner enrichment. The engine never persists profiles.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
