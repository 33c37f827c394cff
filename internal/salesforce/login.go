package salesforce

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

// session is an authenticated Salesforce session.
type session struct {
	token       *oauth2.Token
	instanceURL string
	userID      string
}

const soapLoginTemplate = `<?xml version="1.0" encoding="utf-8"?>
<env:Envelope xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
  <env:Body>
    <n1:login xmlns:n1="urn:partner.soap.sforce.com">
      <n1:username>%s</n1:username>
      <n1:password>%s</n1:password>
    </n1:login>
  </env:Body>
</env:Envelope>`

type soapEnvelope struct {
	Body struct {
		LoginResponse *struct {
			Result struct {
				ServerURL string `xml:"serverUrl"`
				SessionID string `xml:"sessionId"`
				UserID    string `xml:"userId"`
			} `xml:"result"`
		} `xml:"loginResponse"`
		Fault *struct {
			Code   string `xml:"faultcode"`
			String string `xml:"faultstring"`
		} `xml:"Fault"`
	} `xml:"Body"`
}

// soapLogin authenticates with the partner SOAP login call, which only needs
// a username and a password (with the security token appended).
func soapLogin(ctx context.Context, hc *http.Client, cfg Config) (*session, error) {
	endpoint := strings.TrimRight(cfg.LoginURL, "/") + "/services/Soap/u/" + cfg.APIVersion
	body := fmt.Sprintf(soapLoginTemplate, xmlEscape(cfg.Username), xmlEscape(cfg.password()))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/xml; charset=UTF-8")
	req.Header.Set("SOAPAction", "login")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read login response: %w", err)
	}

	var env soapEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode login response (status %d): %w", resp.StatusCode, err)
	}
	if f := env.Body.Fault; f != nil {
		return nil, errors.New(strings.TrimSpace(f.String))
	}
	if env.Body.LoginResponse == nil || env.Body.LoginResponse.Result.SessionID == "" {
		return nil, fmt.Errorf("login response without session (status %d)", resp.StatusCode)
	}

	result := env.Body.LoginResponse.Result
	instance, err := instanceFromServerURL(result.ServerURL)
	if err != nil {
		return nil, err
	}
	return &session{
		token:       &oauth2.Token{AccessToken: result.SessionID, TokenType: "Bearer"},
		instanceURL: instance,
		userID:      result.UserID,
	}, nil
}

// oauthLogin uses the OAuth2 username-password flow of a connected app.
func oauthLogin(ctx context.Context, hc *http.Client, cfg Config) (*session, error) {
	oc := oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  strings.TrimRight(cfg.LoginURL, "/") + "/services/oauth2/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, hc)
	tok, err := oc.PasswordCredentialsToken(ctx, cfg.Username, cfg.password())
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			if list := parseErrors(re.Body); len(list) > 0 {
				return nil, errors.New(joinErrors(list))
			}
		}
		return nil, err
	}
	instance, _ := tok.Extra("instance_url").(string)
	if instance == "" {
		return nil, errors.New("token response without instance_url")
	}
	id, _ := tok.Extra("id").(string)
	return &session{
		token:       tok,
		instanceURL: strings.TrimRight(instance, "/"),
		userID:      id,
	}, nil
}

func instanceFromServerURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid server url %q", serverURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
