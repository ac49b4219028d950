package soccerlens

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/soccerlens/scout/internal/domain/catalog"
	"github.com/soccerlens/scout/internal/domain/player"
	"github.com/soccerlens/scout/internal/platform/logging"
	"github.com/soccerlens/scout/internal/platform/querybuilder"
	"github.com/soccerlens/scout/internal/platform/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// 30s suits the higher-latency mobile networks this backend was sized for.
	defaultTimeout      = 30 * time.Second
	defaultProbeTimeout = 5 * time.Second

	maxBodyBytes = 6 << 20

	defaultSimilarLimit     = 10
	maxSimilarLimit         = 20
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 100
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	ProbeTimeout   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the SoccerLens players API. All failures leave normalized
// into the package taxonomy; the base address is fixed at construction.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	timeout        time.Duration
	probeTimeout   time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		timeout:        timeout,
		probeTimeout:   probeTimeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// ListPlayers serves both unfiltered browsing and text search: the backend
// exposes a single listing route so sorting and search always compose.
func (c *Client) ListPlayers(ctx context.Context, q querybuilder.Query) (player.Page, error) {
	var envelope listEnvelope
	if err := c.doJSON(ctx, "/players/", querybuilder.FromQuery(q).Values(), &envelope); err != nil {
		return player.Page{}, err
	}
	return player.Page{Items: envelope.Results, TotalCount: envelope.Count}, nil
}

func (c *Client) GetPlayer(ctx context.Context, id int64) (player.Player, error) {
	if id <= 0 {
		return player.Player{}, crerr.Mark(crerr.Newf("player id must be greater than zero, got %d", id), ErrClient)
	}
	var out player.Player
	if err := c.doJSON(ctx, fmt.Sprintf("/players/%d/", id), nil, &out); err != nil {
		return player.Player{}, err
	}
	return out, nil
}

func (c *Client) SimilarPlayers(ctx context.Context, id int64, method string, limit int) (player.SimilarResult, error) {
	if id <= 0 {
		return player.SimilarResult{}, crerr.Mark(crerr.Newf("player id must be greater than zero, got %d", id), ErrClient)
	}
	method = strings.ToLower(strings.TrimSpace(method))
	if method == "" {
		method = player.MethodHybrid
	}
	if !player.ValidMethod(method) {
		return player.SimilarResult{}, crerr.Mark(
			crerr.Newf("invalid similarity method %q: choose statistical, nlp or hybrid", method), ErrClient)
	}
	if limit <= 0 {
		limit = defaultSimilarLimit
	}
	if limit > maxSimilarLimit {
		limit = maxSimilarLimit
	}

	params := url.Values{}
	params.Set("method", method)
	params.Set("limit", strconv.Itoa(limit))

	var envelope similarEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/players/%d/similar/", id), params, &envelope); err != nil {
		return player.SimilarResult{}, err
	}
	return player.SimilarResult{
		Player:     envelope.Player,
		Similar:    envelope.SimilarPlayers,
		Method:     envelope.Method,
		Limit:      envelope.Limit,
		TotalFound: envelope.TotalFound,
	}, nil
}

func (c *Client) Leaderboard(ctx context.Context, stat string, limit int) (player.Leaderboard, error) {
	stat = strings.TrimSpace(stat)
	if stat == "" {
		return player.Leaderboard{}, crerr.Mark(crerr.New("leaderboard stat is required"), ErrClient)
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	params := url.Values{}
	params.Set("stat", stat)
	params.Set("limit", strconv.Itoa(limit))

	var envelope leaderboardEnvelope
	if err := c.doJSON(ctx, "/players/leaderboard/", params, &envelope); err != nil {
		return player.Leaderboard{}, err
	}
	return player.Leaderboard{
		Stat:       envelope.Stat,
		StatInfo:   envelope.StatInfo,
		Players:    envelope.Players,
		TotalCount: envelope.TotalCount,
	}, nil
}

// SortOptions fetches the sort catalog, tolerating both payload shapes the
// backend has served. When neither shape is present the catalog stays empty
// and the returned error is marked ErrFormat.
func (c *Client) SortOptions(ctx context.Context, category string) (catalog.Catalog, error) {
	category = strings.TrimSpace(category)
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}

	out, err, _ := c.flight.Do("sort_options:"+category, func() (any, error) {
		var envelope sortOptionsEnvelope
		if err := c.doJSON(ctx, "/players/sort_options/", params, &envelope); err != nil {
			return catalog.Catalog{}, err
		}

		parsed, ok := parseSortOptions(envelope)
		if !ok {
			err := crerr.Mark(crerr.New("sort options payload has neither all_options nor categories"), ErrFormat)
			c.logger.ErrorContext(ctx, "unrecoverable sort options payload shape", "category", category, "error", err)
			return catalog.Catalog{}, err
		}
		return parsed, nil
	})
	if err != nil {
		return catalog.Catalog{}, err
	}

	parsed, ok := out.(catalog.Catalog)
	if !ok {
		return catalog.Catalog{}, crerr.Mark(crerr.Newf("unexpected catalog payload type %T", out), ErrFormat)
	}
	return parsed, nil
}

func (c *Client) Positions(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "/players/positions/")
}

func (c *Client) Competitions(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "/players/competitions/")
}

func (c *Client) Teams(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "/players/teams/")
}

func (c *Client) Nations(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "/players/nations/")
}

func (c *Client) stringList(ctx context.Context, path string) ([]string, error) {
	out, err, _ := c.flight.Do("list:"+path, func() (any, error) {
		var items []string
		if err := c.doJSON(ctx, path, nil, &items); err != nil {
			return nil, err
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	items, ok := out.([]string)
	if !ok {
		return nil, crerr.Mark(crerr.Newf("unexpected list payload type %T", out), ErrFormat)
	}
	return items, nil
}

// Probe is a lightweight connectivity check: one minimal listing request on a
// short deadline. It never returns an error and never touches the breaker.
func (c *Client) Probe(ctx context.Context) bool {
	params := url.Values{}
	params.Set("page", "1")
	params.Set("page_size", "1")

	_, err := c.execute(ctx, "/players/", params, c.probeTimeout)
	if err != nil {
		c.logger.DebugContext(ctx, "connectivity probe failed", "error", err)
		return false
	}
	return true
}

func (c *Client) doJSON(ctx context.Context, path string, params url.Values, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "circuit breaker rejected request", "state", c.breaker.State(), "path", path)
			return crerr.Mark(crerr.Wrap(err, "soccerlens backend is temporarily unavailable"), ErrNetwork)
		}
	}

	raw, err := c.execute(ctx, path, params, c.timeout)
	if c.circuitEnabled {
		if isCircuitFailure(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Mark(crerr.Wrapf(err, "decode %s payload", path), ErrFormat)
	}
	return nil
}

func (c *Client) execute(ctx context.Context, path string, params url.Values, timeout time.Duration) ([]byte, error) {
	fullURL := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "build request"), ErrClient)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "request failed", "url", fullURL, "error", err)
		return nil, crerr.Mark(crerr.Wrap(err, "send request"), ErrNetwork)
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, crerr.Mark(crerr.Wrap(readErr, "read response body"), ErrNetwork)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	var payload errorEnvelope
	_ = sonic.Unmarshal(raw, &payload)
	return nil, newServerError(resp.StatusCode, payload.message())
}

// isCircuitFailure: only failures that indicate an unhealthy dependency count
// against the breaker. Client-side 4xx responses are the caller's fault.
func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	if crerr.Is(err, ErrNetwork) {
		return true
	}
	if status, ok := StatusOf(err); ok && status >= 500 {
		return true
	}
	return false
}
