package celebration

import "context"

// Service is the interface for the celebration service
type Service interface {
	// GetDuelGif returns a gif URL suitable for announcing a match
	GetDuelGif(ctx context.Context) (*GetDuelGifOutput, error)
}
