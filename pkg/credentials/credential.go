// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package credentials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// DefaultAuthorityHost is the Entra ID authority for the public cloud.
	DefaultAuthorityHost = "https://login.microsoftonline.com"

	// AIProjectScope is the token scope for Azure AI Foundry project endpoints.
	AIProjectScope = "https://ai.azure.com/.default"

	// CognitiveServicesScope is the token scope for Azure OpenAI data-plane calls.
	CognitiveServicesScope = "https://cognitiveservices.azure.com/.default"

	// RedactedValue replaces secrets in printable output.
	RedactedValue = "[REDACTED]"
)

// Credential is a client-secret credential for a service principal.
// It performs no network calls until a token is requested from its TokenSource.
type Credential struct {
	TenantID      string
	ClientID      string
	ClientSecret  string
	AuthorityHost string
}

// CredentialOption customises a Credential.
type CredentialOption func(*Credential)

// WithAuthorityHost overrides the authority used to build the token URL.
func WithAuthorityHost(host string) CredentialOption {
	return func(c *Credential) {
		if host != "" {
			c.AuthorityHost = strings.TrimRight(host, "/")
		}
	}
}

// NewCredential builds a Credential from its three required parts.
func NewCredential(tenantID, clientID, clientSecret string, opts ...CredentialOption) (*Credential, error) {
	if tenantID == "" || clientID == "" || clientSecret == "" {
		return nil, errors.New("tenant ID, client ID and client secret are all required")
	}

	c := &Credential{
		TenantID:      tenantID,
		ClientID:      clientID,
		ClientSecret:  clientSecret,
		AuthorityHost: DefaultAuthorityHost,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TokenURL returns the OAuth 2.0 v2 token endpoint for the credential's tenant.
func (c *Credential) TokenURL() string {
	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.AuthorityHost, c.TenantID)
}

// OAuth2Config returns a client credentials grant configuration for the given scopes.
func (c *Credential) OAuth2Config(scopes ...string) *clientcredentials.Config {
	return &clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.TokenURL(),
		Scopes:       scopes,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
}

// TokenSource returns a token source for downstream clients.
// Tokens are only fetched when the source is first used.
func (c *Credential) TokenSource(ctx context.Context, scopes ...string) oauth2.TokenSource {
	return c.OAuth2Config(scopes...).TokenSource(ctx)
}

// String implements fmt.Stringer without exposing the client secret.
func (c *Credential) String() string {
	return fmt.Sprintf("Credential{TenantID: %s, ClientID: %s, ClientSecret: %s}", c.TenantID, c.ClientID, RedactedValue)
}

// LogValue implements slog.LogValuer without exposing the client secret.
func (c *Credential) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("tenant_id", c.TenantID),
		slog.String("client_id", c.ClientID),
		slog.String("authority_host", c.AuthorityHost),
	)
}
