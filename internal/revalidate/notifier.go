// Package revalidate tells the storefront which cached admin pages are stale.
// Signals are best effort: fire-and-forget, unordered, never retried.
package revalidate

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"billdocs/internal/config"
	"billdocs/internal/metrics"
)

// Notifier fires a cache-invalidation signal for the given page paths.
// Implementations must not block the caller.
type Notifier interface {
	Revalidate(paths ...string)
}

// Noop drops every signal.
type Noop struct{}

func (Noop) Revalidate(...string) {}

type payload struct {
	Paths []string `json:"paths"`
}

// Webhook posts signals to the storefront's revalidation endpoint.
type Webhook struct {
	client  *resty.Client
	url     string
	timeout time.Duration
	log     zerolog.Logger
	metrics *metrics.Metrics
	wg      sync.WaitGroup
}

// New returns a Webhook for cfg, or Noop when no URL is configured.
func New(cfg config.RevalidateConfig, log zerolog.Logger, m *metrics.Metrics) Notifier {
	if cfg.URL == "" {
		return Noop{}
	}
	return NewWebhook(cfg, log, m)
}

func NewWebhook(cfg config.RevalidateConfig, log zerolog.Logger, m *metrics.Metrics) *Webhook {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := resty.New().
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetHeader("Content-Type", "application/json")
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &Webhook{
		client:  client,
		url:     cfg.URL,
		timeout: timeout,
		log:     log,
		metrics: m,
	}
}

// Revalidate sends the signal in the background and returns immediately.
func (w *Webhook) Revalidate(paths ...string) {
	if len(paths) == 0 {
		return
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.send(paths)
	}()
}

func (w *Webhook) send(paths []string) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(payload{Paths: paths}).
		Post(w.url)
	if err != nil {
		w.metrics.RevalidationSent("error")
		w.log.Warn().Err(err).Strs("paths", paths).Msg("revalidation_failed")
		return
	}
	if resp.IsError() {
		w.metrics.RevalidationSent("error")
		w.log.Warn().Int("status", resp.StatusCode()).Strs("paths", paths).Msg("revalidation_rejected")
		return
	}
	w.metrics.RevalidationSent("ok")
	w.log.Debug().Strs("paths", paths).Msg("revalidation_sent")
}

// Wait blocks until in-flight signals are done. Used on shutdown.
func (w *Webhook) Wait() {
	w.wg.Wait()
}
