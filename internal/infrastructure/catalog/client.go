package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"

	"github.com/oksasatya/majesty-shop/internal/domain/entity"
)

var (
	loadsTotal  = expvar.NewInt("catalog_loads_total")
	loadsFailed = expvar.NewInt("catalog_loads_failed")
)

type Options struct {
	URL            string
	MaxAttempts    int
	RetryBase      time.Duration
	Timeout        time.Duration
	BreakerTimeout time.Duration
}

// Client loads the full product list from the upstream JSON endpoint.
// No pagination parameters are sent; paging happens locally.
type Client struct {
	url         string
	maxAttempts int
	fetcher     *Fetcher
	breaker     *gobreaker.CircuitBreaker[[]entity.Product]
	logger      *logrus.Logger
}

func NewClient(opts Options, logger *logrus.Logger) *Client {
	httpClient := &http.Client{Timeout: opts.Timeout}
	return newClient(opts, NewFetcher(httpClient, opts.RetryBase, logger), logger)
}

func newClient(opts Options, fetcher *Fetcher, logger *logrus.Logger) *Client {
	c := &Client{
		url:         opts.URL,
		maxAttempts: opts.MaxAttempts,
		fetcher:     fetcher,
		logger:      logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]entity.Product](gobreaker.Settings{
		Name:    "product-api",
		Timeout: opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// a caller giving up is not an upstream failure
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("circuit breaker state changed")
			}
		},
	})
	return c
}

// ListProducts fetches and decodes the product list.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	loadsTotal.Add(1)
	products, err := c.breaker.Execute(func() ([]entity.Product, error) {
		return c.load(ctx)
	})
	if err != nil {
		loadsFailed.Add(1)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &FetchError{URL: c.url, Attempts: 0, Err: ErrCircuitOpen}
		}
		return nil, err
	}
	return products, nil
}

func (c *Client) load(ctx context.Context) ([]entity.Product, error) {
	resp, err := c.fetcher.Fetch(ctx, c.url, c.maxAttempts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var products []entity.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, &MalformedDataError{Err: err}
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}
