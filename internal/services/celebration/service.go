package celebration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/valyala/fasthttp"
)

const defaultTimeout = 5 * time.Second

// fallbackGifs are served whenever the gif API is unreachable or
// returns something unusable.
var fallbackGifs = []string{
	"https://media.giphy.com/media/10LNU1e8M7rq2Q/giphy.gif",
	"https://media.giphy.com/media/ZeB4HcMpsyDo4/giphy.gif",
	"https://media.giphy.com/media/l41lUJ1YoZB1lHVPG/giphy.gif",
	"https://media.giphy.com/media/3o7qDVHji2HjcJ5bby/giphy.gif",
}

// service implements the Service interface
type service struct {
	apiURL  string
	timeout time.Duration
	http    *fasthttp.Client

	// Random number generator for selecting fallback gifs
	rand *rand.Rand
}

// New creates a new celebration service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	source := rand.NewSource(time.Now().UnixNano())

	return &service{
		apiURL:  apiURL,
		timeout: timeout,
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		rand: rand.New(source),
	}, nil
}

// randomGifResponse is the shape of the Giphy random endpoint
type randomGifResponse struct {
	Data struct {
		ImageURL string `json:"image_url"`
	} `json:"data"`
}

// GetDuelGif returns a gif URL suitable for announcing a match. API
// failures degrade to a built-in gif rather than an error.
func (s *service) GetDuelGif(ctx context.Context) (*GetDuelGifOutput, error) {
	url, err := s.fetchRandomGif(ctx)
	if err != nil {
		url = fallbackGifs[s.rand.Intn(len(fallbackGifs))]
	}

	return &GetDuelGifOutput{
		URL: url,
	}, nil
}

func (s *service) fetchRandomGif(ctx context.Context) (string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(s.apiURL)

	if err := s.http.DoDeadline(req, resp, s.computeDeadline(ctx)); err != nil {
		return "", fmt.Errorf("gif request failed: %w", err)
	}

	if status := resp.StatusCode(); status < 200 || status >= 300 {
		return "", fmt.Errorf("gif api error: status=%d", status)
	}

	var parsed randomGifResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", fmt.Errorf("decode gif response: %w", err)
	}

	if parsed.Data.ImageURL == "" {
		return "", errors.New("gif response missing image url")
	}

	return parsed.Data.ImageURL, nil
}

func (s *service) computeDeadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(s.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		return dl
	}
	return deadline
}
