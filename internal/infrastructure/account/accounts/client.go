package accounts

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/penca-app/penca-api/internal/domain/identity"
	"github.com/penca-app/penca-api/internal/platform/logging"
	"github.com/penca-app/penca-api/internal/platform/resilience"
	"github.com/penca-app/penca-api/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultTimeout         = 3 * time.Second
	defaultCacheTTL        = 30 * time.Second
	defaultCacheMaxEntries = 4096
	maxResponseBody        = 1 << 20
)

var errAccountsTransient = crerr.New("accounts transient failure")

type Config struct {
	BaseURL        string
	IntrospectPath string
	AdminKey       string
	Timeout        time.Duration
	CacheTTL       time.Duration
	CacheMax       int
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
}

// Client resolves session tokens against the accounts service introspection
// endpoint. Verified principals are cached briefly by token hash so bursts of
// requests from one session do not hammer the accounts service.
type Client struct {
	httpClient     *fasthttp.Client
	introspectURL  string
	adminKey       string
	timeout        time.Duration
	logger         *logging.Logger
	cache          *inMemoryPrincipalCache
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	cacheMax := cfg.CacheMax
	if cacheMax <= 0 {
		cacheMax = defaultCacheMaxEntries
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		introspectURL:  buildURL(cfg.BaseURL, cfg.IntrospectPath),
		adminKey:       strings.TrimSpace(cfg.AdminKey),
		timeout:        timeout,
		logger:         logger,
		cache:          newInMemoryPrincipalCache(cacheTTL, cacheMax),
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) VerifySession(ctx context.Context, token string) (identity.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return identity.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := hashToken(token)
	if principal, ok := c.cache.Get(cacheKey); ok {
		return principal, nil
	}

	// Concurrent requests carrying the same token share one introspection.
	value, err, _ := c.flight.Do(cacheKey, func() (any, error) {
		if principal, ok := c.cache.Get(cacheKey); ok {
			return principal, nil
		}
		principal, err := c.introspect(ctx, token)
		if err != nil {
			return nil, err
		}
		c.cache.Set(cacheKey, principal)
		return principal, nil
	})
	if err != nil {
		return identity.Principal{}, err
	}

	principal, ok := value.(identity.Principal)
	if !ok {
		return identity.Principal{}, crerr.New("unexpected principal type from introspection")
	}
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (identity.Principal, error) {
	if err := ctx.Err(); err != nil {
		return identity.Principal{}, err
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "accounts circuit breaker rejected request", "state", c.breaker.State())
			return identity.Principal{}, fmt.Errorf("%w: accounts service is temporarily unavailable: %v", usecase.ErrDependencyUnavailable, err)
		}
	}

	body, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return identity.Principal{}, crerr.Wrap(err, "marshal introspect request")
	}

	c.logger.DebugContext(ctx, "accounts introspect request",
		"url", c.introspectURL,
		"curl_preview", buildIntrospectCurlPreview(c.introspectURL, c.adminKey != ""),
	)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.introspectURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}
	req.SetBody(body)

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		callErr := fmt.Errorf("%w: request introspection: %v", errAccountsTransient, err)
		c.recordCircuitResult(callErr)
		return identity.Principal{}, fmt.Errorf("%w: accounts introspection failed: %v", usecase.ErrDependencyUnavailable, err)
	}

	statusCode := resp.StatusCode()
	switch {
	case statusCode == fasthttp.StatusUnauthorized:
		c.recordCircuitResult(nil)
		return identity.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case statusCode == fasthttp.StatusForbidden:
		// The admin key was rejected, which is a deployment problem rather
		// than a bad user token.
		c.recordCircuitResult(nil)
		return identity.Principal{}, fmt.Errorf("%w: accounts rejected the admin key", usecase.ErrDependencyUnavailable)
	case statusCode != fasthttp.StatusOK:
		callErr := fmt.Errorf("%w: introspection status=%d", errAccountsTransient, statusCode)
		c.recordCircuitResult(callErr)
		c.logger.WarnContext(ctx, "accounts introspection non-200", "status_code", statusCode)
		return identity.Principal{}, fmt.Errorf("%w: accounts introspection failed with status %d", usecase.ErrDependencyUnavailable, statusCode)
	}

	raw := resp.Body()
	if len(raw) > maxResponseBody {
		raw = raw[:maxResponseBody]
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		c.recordCircuitResult(nil)
		return identity.Principal{}, crerr.Wrap(err, "unmarshal introspect response")
	}
	c.recordCircuitResult(nil)

	if !decoded.Active {
		return identity.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return identity.Principal{}, crerr.New("invalid introspect response: user_id is empty")
	}

	return identity.Principal{
		UserID:      decoded.UserID,
		Username:    decoded.Username,
		DisplayName: decoded.DisplayName,
	}, nil
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err == nil {
		c.breaker.RecordSuccess()
		return
	}
	if isCircuitFailure(err) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errAccountsTransient)
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active      bool   `json:"active"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}
