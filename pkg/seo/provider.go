// Package seo fetches keyword volume, difficulty, and trend metrics from an
// external API with deterministic fallbacks.
package seo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Metrics are the keyword signals for one idea title. All four fields are
// always populated, even when the real API is unreachable.
type Metrics struct {
	SearchVolume      int     `json:"search_volume"`
	KeywordDifficulty float64 `json:"keyword_difficulty"`
	TrendDirection    string  `json:"trend_direction"`
	Source            string  `json:"source"`
}

// Trend directions reported by the provider.
const (
	TrendUpward   = "upward"
	TrendFlat     = "flat"
	TrendDownward = "downward"
)

// Provider supplies keyword metrics. Implementations must not fail: on any
// internal error they degrade to deterministic fallback metrics.
type Provider interface {
	Fetch(ctx context.Context, keyword string) Metrics
}

// Option configures the HTTP provider.
type Option func(*httpProvider)

// WithBaseURL overrides the metrics endpoint (for testing).
func WithBaseURL(u string) Option {
	return func(p *httpProvider) {
		p.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(p *httpProvider) {
		p.http = hc
	}
}

// WithRateLimit overrides the outbound request rate.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(p *httpProvider) {
		p.limiter = rate.NewLimiter(limit, burst)
	}
}

type httpProvider struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// New creates an HTTP-backed metrics provider. With an empty key or base
// URL the provider serves fallback metrics only.
func New(apiKey, baseURL string, opts ...Option) Provider {
	p := &httpProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch returns metrics for a keyword. Same keyword, same fallback: scoring
// stays reproducible without network access.
func (p *httpProvider) Fetch(ctx context.Context, keyword string) Metrics {
	cleaned := strings.TrimSpace(keyword)
	if cleaned == "" {
		return Fallback("", "missing-keyword")
	}
	if p.apiKey == "" || p.baseURL == "" {
		return Fallback(cleaned, "missing-configuration")
	}

	metrics, err := p.query(ctx, cleaned)
	if err != nil {
		zap.L().Warn("seo: lookup failed, using fallback metrics",
			zap.String("keyword", cleaned), zap.Error(err))
		return Fallback(cleaned, "api-fallback")
	}
	return metrics
}

func (p *httpProvider) query(ctx context.Context, keyword string) (Metrics, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return Metrics{}, err
	}

	u, err := url.Parse(p.baseURL)
	if err != nil {
		return Metrics{}, err
	}
	q := u.Query()
	q.Set("keyword", keyword)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Metrics{}, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.http.Do(req)
	if err != nil {
		return Metrics{}, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return Metrics{}, &statusError{code: resp.StatusCode}
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Metrics{}, err
	}

	metrics, ok := parsePayload(payload)
	if !ok {
		return Metrics{}, errMalformedPayload
	}
	if metrics.Source == "" {
		metrics.Source = "api"
	}
	return metrics, nil
}

// Fallback generates deterministic placeholder metrics by hashing the
// keyword into a small integer space.
func Fallback(keyword, reason string) Metrics {
	digest := sha256.Sum256([]byte(keyword))
	seed64, _ := strconv.ParseUint(hex.EncodeToString(digest[:4]), 16, 64)
	seed := int(seed64)

	trends := []string{TrendUpward, TrendFlat, TrendDownward}
	return Metrics{
		SearchVolume:      100 + seed%900,
		KeywordDifficulty: roundTenth(10 + float64(seed%70)*0.9),
		TrendDirection:    trends[seed%3],
		Source:            reason,
	}
}

func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
