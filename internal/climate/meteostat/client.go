package meteostat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/temperature-trend/internal/climate"
	"github.com/sony/gobreaker"
)

// DefaultBaseURL is the Meteostat v2 daily station endpoint.
const DefaultBaseURL = "https://api.meteostat.net/v2/stations/daily"

// Client implements climate.Source for the Meteostat daily endpoint.
type Client struct {
	apiKey  string
	baseURL string
	station int
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// Options configures a Client.
type Options struct {
	APIKey    string
	BaseURL   string // defaults to DefaultBaseURL
	StationID int
	Backoff   BackoffConfig
}

func NewClient(client *http.Client, opts Options) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "meteostat",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		apiKey:  opts.APIKey,
		baseURL: baseURL,
		station: opts.StationID,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: opts.Backoff,
		},
		circuit: cb,
	}
}

// DailyRecords returns every daily record of the station for year.
func (c *Client) DailyRecords(ctx context.Context, year int) ([]climate.DailyRecord, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("meteostat api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("station", strconv.Itoa(c.station))
		values.Set("start", fmt.Sprintf("%04d-01-01", year))
		values.Set("end", fmt.Sprintf("%04d-12-31", year))

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("x-api-key", c.apiKey)
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Data []climate.DailyRecord `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return payload.Data, nil
}
