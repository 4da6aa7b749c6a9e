// Package hubspot is a read-only client for the HubSpot CRM schema APIs:
// property definitions, validation rules, custom object schemas, and
// association labels.
package hubspot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/johnwards/portaldiff/internal/domain"
)

const (
	defaultBaseURL = "https://api.hubapi.com"
	defaultTimeout = 30 * time.Second

	pageLimit = "100"
)

// Client talks to the CRM API for a single portal, identified by its private
// app token. Transient failures (429, 5xx, network errors) are retried with
// exponential backoff.
type Client struct {
	baseURL       string
	token         string
	http          *http.Client
	retryInterval time.Duration
	maxElapsed    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithRetryInterval sets the initial backoff interval between retries.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) {
		c.retryInterval = d
	}
}

// New builds a client for the given private app token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:       defaultBaseURL,
		token:         token,
		http:          &http.Client{Timeout: defaultTimeout},
		retryInterval: 500 * time.Millisecond,
		maxElapsed:    15 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is a non-2xx response from the API.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hubspot: unexpected status %s", e.Status)
}

// Temporary reports whether the response is worth retrying.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// IsAuthError reports whether err is a 401 or 403 from the API, meaning the
// token is missing scopes or invalid.
func IsAuthError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) &&
		(se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden)
}

// IsUpstream reports whether err came from talking to the API, either a
// non-2xx status or a transport failure, rather than from local state.
func IsUpstream(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return true
	}
	var ue *url.Error
	return errors.As(err, &ue)
}

// get performs an authenticated GET and decodes the JSON response into out.
// Temporary failures are retried until the backoff gives up; the last error
// is returned.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			statusErr := &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
			if statusErr.Temporary() {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	policy.MaxElapsedTime = c.maxElapsed
	notify := func(err error, wait time.Duration) {
		slog.Debug("retrying request", "path", path, "wait", wait, "error", err)
	}
	return backoff.RetryNotify(operation, backoff.WithContext(policy, ctx), notify)
}

// ValidateToken probes the API with a minimal request to confirm the token
// works.
func (c *Client) ValidateToken(ctx context.Context) error {
	query := url.Values{"limit": {"1"}}
	if err := c.get(ctx, "/crm/v3/properties/contacts", query, nil); err != nil {
		return fmt.Errorf("validate token: %w", err)
	}
	return nil
}

type propertiesResponse struct {
	Results []domain.Property `json:"results"`
	Paging  *paging           `json:"paging"`
}

type paging struct {
	Next *pagingNext `json:"next"`
}

type pagingNext struct {
	After string `json:"after"`
}

// Properties fetches every property definition for an object type, following
// cursor pagination and merging in the portal's validation rules for that
// type.
func (c *Client) Properties(ctx context.Context, objectType string) ([]domain.Property, error) {
	rulesByProperty := c.validationRules(ctx, objectType)

	var properties []domain.Property
	after := ""
	for {
		query := url.Values{"limit": {pageLimit}}
		if after != "" {
			query.Set("after", after)
		}
		var page propertiesResponse
		if err := c.get(ctx, "/crm/v3/properties/"+url.PathEscape(objectType), query, &page); err != nil {
			return nil, fmt.Errorf("fetch properties for %s: %w", objectType, err)
		}
		for i := range page.Results {
			p := page.Results[i]
			if !normalizeProperty(&p) {
				slog.Warn("skipping malformed property record", "objectType", objectType)
				continue
			}
			p.ValidationRules = rulesByProperty[p.Name]
			properties = append(properties, p)
		}
		if page.Paging == nil || page.Paging.Next == nil || page.Paging.Next.After == "" {
			break
		}
		after = page.Paging.Next.After
	}
	return properties, nil
}

type validationsResponse struct {
	Results []propertyValidations `json:"results"`
}

type propertyValidations struct {
	PropertyName            string              `json:"propertyName"`
	PropertyValidationRules []validationRuleDef `json:"propertyValidationRules"`
}

type validationRuleDef struct {
	RuleType      string   `json:"ruleType"`
	RuleArguments []string `json:"ruleArguments"`
}

// validationRules fetches the portal's validation rules keyed by property
// name. Failures are not fatal: portals without access to the validations API
// simply yield no rules.
func (c *Client) validationRules(ctx context.Context, objectType string) map[string][]domain.ValidationRule {
	typeID := ObjectTypeID(objectType)
	if typeID == "" {
		slog.Warn("no object type id for validation rules", "objectType", objectType)
		return nil
	}
	var out validationsResponse
	if err := c.get(ctx, "/crm/v3/property-validations/"+typeID, nil, &out); err != nil {
		slog.Debug("no validation rules available", "objectType", objectType, "error", err)
		return nil
	}
	rules := make(map[string][]domain.ValidationRule)
	for _, pv := range out.Results {
		if pv.PropertyName == "" {
			continue
		}
		var parsed []domain.ValidationRule
		for _, def := range pv.PropertyValidationRules {
			if rule, ok := parseValidationRule(def); ok {
				parsed = append(parsed, rule)
			}
		}
		if len(parsed) > 0 {
			rules[pv.PropertyName] = parsed
		}
	}
	return rules
}

type schemasResponse struct {
	Results []domain.ObjectSchema `json:"results"`
}

// CustomObjects fetches the portal's custom object schemas. Only schemas in
// the custom id space, a "2-" objectTypeId with a "p"-prefixed fully
// qualified name, are returned.
func (c *Client) CustomObjects(ctx context.Context) ([]domain.ObjectInfo, error) {
	var out schemasResponse
	if err := c.get(ctx, "/crm/v3/schemas", nil, &out); err != nil {
		return nil, fmt.Errorf("fetch custom object schemas: %w", err)
	}
	var objects []domain.ObjectInfo
	for i := range out.Results {
		s := &out.Results[i]
		if !strings.HasPrefix(s.ObjectTypeID, "2-") || !strings.HasPrefix(s.FullyQualifiedName, "p") {
			continue
		}
		objects = append(objects, s.Info())
	}
	return objects, nil
}

type labelsResponse struct {
	Results []associationLabel `json:"results"`
}

type associationLabel struct {
	Category string  `json:"category"`
	TypeID   int     `json:"typeId"`
	Label    *string `json:"label"`
}

// Associations enumerates association definitions by asking the labels API
// about each candidate object type pair. Pairs the portal has no definitions
// for return 404 and are skipped.
func (c *Client) Associations(ctx context.Context, customObjects []domain.ObjectInfo) ([]domain.AssociationConfiguration, error) {
	var associations []domain.AssociationConfiguration
	for _, pair := range associationPairs(customObjects) {
		labels, err := c.associationLabels(ctx, pair[0], pair[1])
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("fetch associations %s to %s: %w", pair[0], pair[1], err)
		}
		associations = append(associations, labels...)
	}
	return associations, nil
}

func (c *Client) associationLabels(ctx context.Context, from, to string) ([]domain.AssociationConfiguration, error) {
	var out labelsResponse
	path := fmt.Sprintf("/crm/v4/associations/%s/%s/labels", url.PathEscape(from), url.PathEscape(to))
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	configurations := make([]domain.AssociationConfiguration, 0, len(out.Results))
	for _, result := range out.Results {
		label := ""
		if result.Label != nil {
			label = *result.Label
		}
		configurations = append(configurations, domain.AssociationConfiguration{
			Label:          label,
			FromObjectType: from,
			ToObjectType:   to,
			Category:       result.Category,
			TypeID:         result.TypeID,
		})
	}
	return configurations, nil
}
