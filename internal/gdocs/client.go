// Package gdocs wraps the Google Drive, Docs and Sheets APIs with the
// handful of operations the document pipeline needs.
package gdocs

import (
	"context"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/irwhub/employee-contract-app/config"
	"github.com/irwhub/employee-contract-app/internal/apperr"
)

var scopes = []string{drive.DriveScope, docs.DocumentsScope, sheets.SpreadsheetsScope}

type Client struct {
	drive  *drive.Service
	docs   *docs.Service
	sheets *sheets.Service
	cfg    config.Google
}

// NewClient builds the API clients from whichever credential is
// configured. Nothing is validated against Google here; a bad credential
// surfaces on the first call.
func NewClient(ctx context.Context, cfg config.Google) (*Client, error) {
	ts, err := tokenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	httpClient := oauth2.NewClient(ctx, ts)

	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, apperr.Upstreamf("google_auth", err, "drive client init failed")
	}
	docsSvc, err := docs.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, apperr.Upstreamf("google_auth", err, "docs client init failed")
	}
	sheetsSvc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, apperr.Upstreamf("google_auth", err, "sheets client init failed")
	}

	return &Client{drive: driveSvc, docs: docsSvc, sheets: sheetsSvc, cfg: cfg}, nil
}

// tokenSource picks credentials in priority order: OAuth refresh token,
// static access token, service-account JSON.
func tokenSource(ctx context.Context, cfg config.Google) (oauth2.TokenSource, error) {
	switch {
	case cfg.RefreshToken != "" && cfg.ClientID != "" && cfg.ClientSecret != "":
		oc := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       scopes,
		}
		return oc.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken}), nil

	case cfg.AccessToken != "":
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken}), nil

	case cfg.ServiceAccountJSON != "":
		raw := []byte(cfg.ServiceAccountJSON)
		if !strings.HasPrefix(strings.TrimSpace(cfg.ServiceAccountJSON), "{") {
			data, err := os.ReadFile(cfg.ServiceAccountJSON)
			if err != nil {
				return nil, apperr.Configf("google_auth", "cannot read service account file: %v", err)
			}
			raw = data
		}
		jc, err := google.JWTConfigFromJSON(raw, scopes...)
		if err != nil {
			return nil, apperr.Configf("google_auth", "invalid service account JSON: %v", err)
		}
		return jc.TokenSource(ctx), nil
	}

	return nil, apperr.Configf("google_auth",
		"no Google credentials configured (need a refresh token, an access token or a service account)")
}
