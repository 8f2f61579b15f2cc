package model

import "fmt"

// Config keys and fallbacks for the key/value settings table.
const (
	ConfigKeyPublicImage = "public_image_url"
	GallerySlots         = 5

	DefaultPublicImageURL = "https://i.pinimg.com/736x/67/74/40/67744063f3ce36103729fb5ed2edc98e.jpg"
	DefaultGalleryImage   = "https://via.placeholder.com/400x200/007bff/ffffff?text=Esign+Image"
	DefaultDownloadLink   = "#"
)

// GalleryKey returns the config key of a gallery image slot (1-based).
func GalleryKey(n int) string {
	return fmt.Sprintf("esign_image_%d", n)
}
