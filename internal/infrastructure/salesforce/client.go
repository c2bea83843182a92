// Package salesforce proxies SOQL queries to a Salesforce org using
// server-held credentials.
package salesforce

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"dashboard-server/internal/config"
	"dashboard-server/internal/infrastructure/metrics"
	"dashboard-server/internal/utils/platformerrors"
)

// Client authenticates and queries against a Salesforce org. A fresh token is
// exchanged for every query; tokens are not cached across calls.
type Client struct {
	httpClient *resty.Client
	loginURL   string
	apiVersion string
	maxRecords int

	clientID     string
	clientSecret string
	username     string
	password     string
}

// NewClient creates a Resty-backed client.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient:   resty.New().SetTimeout(30 * time.Second),
		loginURL:     cfg.SalesforceLoginURL,
		apiVersion:   cfg.SalesforceAPIVersion,
		maxRecords:   cfg.SalesforceMaxRecords,
		clientID:     cfg.SalesforceClientID,
		clientSecret: cfg.SalesforceClientSecret,
		username:     cfg.SalesforceUsername,
		password:     cfg.SalesforcePassword,
	}
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	InstanceURL string `json:"instance_url"`
}

type queryResponse struct {
	TotalSize int              `json:"totalSize"`
	Done      bool             `json:"done"`
	Records   []map[string]any `json:"records"`
}

// Query runs a SOQL query and returns at most maxRecords records. A
// maxRecords of zero or less falls back to the configured cap.
func (c *Client) Query(ctx context.Context, soql string, maxRecords int) ([]map[string]any, error) {
	auth, err := c.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	if maxRecords <= 0 || maxRecords > c.maxRecords {
		maxRecords = c.maxRecords
	}

	start := time.Now()
	var result queryResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+auth.AccessToken).
		SetQueryParam("q", soql).
		SetResult(&result).
		Get(fmt.Sprintf("%s/services/data/%s/query/", auth.InstanceURL, c.apiVersion))
	metrics.ProviderDuration.WithLabelValues("salesforce").Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"salesforce query request failed", err, "salesforce-query-001")
	}
	if resp.IsError() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("salesforce query failed: %s", resp.Status()), nil, "salesforce-query-002")
	}

	records := result.Records
	if len(records) > maxRecords {
		records = records[:maxRecords]
	}
	return records, nil
}

// authenticate performs the OAuth password grant.
func (c *Client) authenticate(ctx context.Context) (*authResponse, error) {
	var auth authResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "password",
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
			"username":      c.username,
			"password":      c.password,
		}).
		SetResult(&auth).
		Post(c.loginURL + "/services/oauth2/token")

	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"salesforce authentication request failed", err, "salesforce-auth-001")
	}
	if resp.IsError() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("salesforce authentication failed: %s", resp.Status()), nil, "salesforce-auth-002")
	}

	return &auth, nil
}
