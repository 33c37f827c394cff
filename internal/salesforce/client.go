package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"

	"github.com/roivaz/mcp-salesforce/internal/logging"
)

type Config struct {
	LoginURL      string
	Username      string
	Password      string
	SecurityToken string
	// ClientID and ClientSecret switch login to the OAuth2 password flow.
	ClientID     string
	ClientSecret string
	APIVersion   string
	Timeout      time.Duration
	// HTTPClient is the base transport for login and REST calls. Optional.
	HTTPClient *http.Client
	Logger     logging.Logger
	// OnLogin, when set, observes the outcome of every login attempt.
	OnLogin func(error)
}

func (c Config) password() string {
	return c.Password + c.SecurityToken
}

// Client is an authenticated REST client bound to one Salesforce instance.
type Client struct {
	http        *http.Client
	instanceURL string
	apiVersion  string
	userID      string
	log         logging.Logger
}

// Dial validates the credentials, logs in and returns a client for the
// session's instance.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "59.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: cfg.Timeout}
	}

	login := soapLogin
	if cfg.ClientID != "" {
		login = oauthLogin
	}
	sess, err := login(ctx, base, cfg)
	if err != nil {
		return nil, &LoginError{Err: err}
	}

	// REST calls carry the session token through an oauth2 transport layered
	// on the base client.
	tc := oauth2.NewClient(context.WithValue(context.Background(), oauth2.HTTPClient, base), oauth2.StaticTokenSource(sess.token))
	tc.Timeout = cfg.Timeout

	return &Client{
		http:        tc,
		instanceURL: sess.instanceURL,
		apiVersion:  cfg.APIVersion,
		userID:      sess.userID,
		log:         cfg.Logger,
	}, nil
}

func (c *Client) InstanceURL() string { return c.instanceURL }
func (c *Client) UserID() string      { return c.userID }

// Query runs a SOQL query and returns its first batch.
func (c *Client) Query(ctx context.Context, soql string) (*QueryResult, error) {
	body, err := c.do(ctx, http.MethodGet, "/query", url.Values{"q": {soql}}, nil)
	if err != nil {
		return nil, err
	}
	var result QueryResult
	if err := decodeJSON(body, &result); err != nil {
		return nil, fmt.Errorf("decode query result: %w", err)
	}
	if result.Records == nil {
		result.Records = []Record{}
	}
	return &result, nil
}

// Search runs a SOSL search and returns the raw response document.
func (c *Client) Search(ctx context.Context, sosl string) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, "/search", url.Values{"q": {sosl}}, nil)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decode search result: invalid json")
	}
	return json.RawMessage(body), nil
}

// Create inserts one record of the given sObject type.
func (c *Client) Create(ctx context.Context, sobject string, fields map[string]any) (*SaveResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/sobjects/"+url.PathEscape(sobject), nil, fields)
	if err != nil {
		return nil, asMutationError(sobject, err)
	}
	res := gjson.ParseBytes(body)
	result := &SaveResult{
		ID:      res.Get("id").String(),
		Success: res.Get("success").Bool(),
	}
	res.Get("errors").ForEach(func(_, item gjson.Result) bool {
		result.Errors = append(result.Errors, apiErrorFrom(item))
		return true
	})
	if !result.Success {
		return nil, &MutationError{SObject: sobject, Errors: result.Errors}
	}
	return result, nil
}

// Update patches one record. Salesforce answers 204 without a body on
// success, so the returned result echoes the id.
func (c *Client) Update(ctx context.Context, sobject, id string, fields map[string]any) (*SaveResult, error) {
	path := "/sobjects/" + url.PathEscape(sobject) + "/" + url.PathEscape(id)
	if _, err := c.do(ctx, http.MethodPatch, path, nil, fields); err != nil {
		return nil, asMutationError(sobject, err)
	}
	return &SaveResult{ID: id, Success: true}, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	endpoint := c.instanceURL + "/services/data/v" + c.apiVersion + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.log.Debug("salesforce call", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{StatusCode: resp.StatusCode, Errors: parseErrors(body)}
	}
	return body, nil
}

// asMutationError turns a 4xx error list into a MutationError; transport and
// server failures are returned unchanged.
func asMutationError(sobject string, err error) error {
	var re *RequestError
	if errors.As(err, &re) && re.StatusCode >= 400 && re.StatusCode < 500 && len(re.Errors) > 0 {
		return &MutationError{SObject: sobject, Errors: re.Errors}
	}
	return err
}
