package celebration

import "time"

// DefaultAPIURL is the public Giphy random endpoint tagged for table
// tennis gifs.
const DefaultAPIURL = "https://api.giphy.com/v1/gifs/random?api_key=dc6zaTOxFJmzC&tag=ping+pong"

// Config holds configuration for the celebration service
type Config struct {
	// APIURL overrides the gif endpoint; DefaultAPIURL is used when empty
	APIURL string

	// Timeout bounds each fetch; a sensible default applies when zero
	Timeout time.Duration
}

// GetDuelGifOutput contains the gif URL to display
type GetDuelGifOutput struct {
	URL string
}
