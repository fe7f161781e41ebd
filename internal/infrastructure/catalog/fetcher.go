package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Fetcher performs GETs with bounded exponential backoff.
// After failed attempt i (0-indexed) it waits Base * 2^i before the next one,
// so k attempts wait Base, 2*Base, ... 2^(k-2)*Base in total.
type Fetcher struct {
	Client *http.Client
	Base   time.Duration
	Sleep  SleepFunc
	Logger *logrus.Logger
}

func NewFetcher(client *http.Client, base time.Duration, logger *logrus.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{Client: client, Base: base, Sleep: sleepCtx, Logger: logger}
}

// Fetch returns the first 2xx response. Transport failures and non-2xx statuses
// are retried; the last one is returned wrapped in a *FetchError.
// The caller owns the returned body.
func (f *Fetcher) Fetch(ctx context.Context, url string, maxAttempts int) (*http.Response, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		resp, err := f.attempt(ctx, url)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if i == maxAttempts-1 {
			break
		}

		delay := f.Base * time.Duration(1<<i)
		if f.Logger != nil {
			f.Logger.WithError(err).WithFields(logrus.Fields{
				"url":     url,
				"attempt": i + 1,
				"delay":   delay.String(),
			}).Warn("product fetch failed, retrying")
		}
		if err := f.Sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
	return nil, &FetchError{URL: url, Attempts: maxAttempts, Err: lastErr}
}

func (f *Fetcher) attempt(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
