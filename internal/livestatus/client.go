// Package livestatus proxies running-status lookups to the third-party rail
// status provider.
package livestatus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/train-booking/internal/model"
)

const (
	DefaultHost    = "indian-railway-irctc.p.rapidapi.com"
	statusPath     = "/api/trains/v1/train/status"
	maxStartDay    = 2
	maxPayloadSize = 4 << 20
)

// Config holds the provider endpoint and credentials.
type Config struct {
	BaseURL string // defaults to https://<Host>
	APIKey  string
	Host    string
	Timeout time.Duration
}

// Client calls the provider. The zero value is not usable; use New.
type Client struct {
	cfg  Config
	http *http.Client
	now  func() time.Time
	log  *logrus.Entry
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithClock replaces time.Now when computing the departure date.
func WithClock(now func() time.Time) Option { return func(c *Client) { c.now = now } }

func New(cfg Config, opts ...Option) *Client {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://" + cfg.Host
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		now:  time.Now,
		log:  logrus.WithField("component", "livestatus"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ParseStartDay accepts "", "0", "1" or "2". Empty means today.
func ParseStartDay(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: startDay must be numeric", model.ErrValidation)
	}
	if n < 0 || n > maxStartDay {
		return 0, fmt.Errorf("%w: startDay must be between 0 and %d", model.ErrValidation, maxStartDay)
	}
	return n, nil
}

// DepartureDate formats now+startDay days (UTC) as YYYYMMDD.
func DepartureDate(now time.Time, startDay int) string {
	return now.UTC().AddDate(0, 0, startDay).Format("20060102")
}

// Status fetches the running status of trainNo for the journey that started
// startDay days from today. The provider's JSON body is returned untouched.
func (c *Client) Status(ctx context.Context, trainNo, startDay string) (json.RawMessage, error) {
	trainNo = strings.TrimSpace(trainNo)
	if trainNo == "" {
		return nil, fmt.Errorf("%w: trainNo is required", model.ErrValidation)
	}
	day, err := ParseStartDay(startDay)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("departure_date", DepartureDate(c.now(), day))
	q.Set("isH5", "true")
	q.Set("client", "web")
	q.Set("train_number", trainNo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+statusPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", model.ErrUpstream, err)
	}
	req.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.cfg.Host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("train_number", trainNo).Warn("provider request failed")
		return nil, fmt.Errorf("%w: failed to fetch train status", model.ErrUpstream)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read provider response: %v", model.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := providerMessage(body)
		c.log.WithFields(logrus.Fields{
			"train_number": trainNo,
			"status":       resp.StatusCode,
		}).Warn("provider returned error: " + msg)
		return nil, fmt.Errorf("%w: %s", model.ErrUpstream, msg)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: provider returned invalid JSON", model.ErrUpstream)
	}
	return json.RawMessage(body), nil
}

func providerMessage(body []byte) string {
	var p struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &p); err == nil && p.Message != "" {
		return p.Message
	}
	return "failed to fetch train status"
}
