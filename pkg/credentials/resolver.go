// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package credentials

import (
	"github.com/stacklok/azcreds/pkg/logger"
	"github.com/stacklok/toolhive-core/env"
)

// Recognised configuration keys.
const (
	TenantIDKey        = "AZURE_TENANT_ID"
	ClientIDKey        = "AZURE_CLIENT_ID"
	ClientSecretKey    = "AZURE_CLIENT_SECRET"
	AuthorityHostKey   = "AZURE_AUTHORITY_HOST"
	ProjectEndpointKey = "AZURE_AI_PROJECT_ENDPOINT"
	OpenAIEndpointKey  = "AZURE_OPENAI_ENDPOINT"
	OpenAIAPIKeyKey    = "AZURE_OPENAI_API_KEY"
	OpenAIVersionKey   = "AZURE_OPENAI_API_VERSION"
)

// RequiredKeys lists every key the accessors resolve, in accessor order.
var RequiredKeys = []string{
	TenantIDKey,
	ClientIDKey,
	ClientSecretKey,
	ProjectEndpointKey,
	OpenAIEndpointKey,
	OpenAIAPIKeyKey,
	OpenAIVersionKey,
}

// Resolver resolves configuration values using a fixed Mode.
// It has no mutators and is safe for concurrent use.
type Resolver struct {
	store   Store
	ambient env.Reader
	mode    Mode
}

// New loads envFile (DefaultEnvFile when empty) and builds a Resolver over it
// and the ambient environment.
func New(envFile string, ambient env.Reader) (*Resolver, error) {
	store, err := LoadStore(envFile)
	if err != nil {
		return nil, err
	}
	return NewFromStore(store, ambient)
}

// NewFromStore builds a Resolver from an already loaded store.
func NewFromStore(store Store, ambient env.Reader) (*Resolver, error) {
	if ambient == nil {
		ambient = Snapshot{}
	}
	if store == nil {
		store = Store{}
	}

	mode, err := store.mode(ambient)
	if err != nil {
		return nil, err
	}
	logger.Debugw("credential mode selected", "mode", string(mode))

	return &Resolver{
		store:   store,
		ambient: ambient,
		mode:    mode,
	}, nil
}

// Mode returns the resolution mode selected at construction.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// Resolve returns the value for key according to the resolver's mode.
func (r *Resolver) Resolve(key string) (string, error) {
	raw := r.store.lookup(key, r.ambient)
	if raw == "" {
		return "", &ConfigurationError{Key: key, Err: ErrMissingValue}
	}
	return r.mode.apply(key, raw, r.ambient)
}

// Credentials builds a service principal credential from the tenant, client ID and client secret keys.
func (r *Resolver) Credentials() (*Credential, error) {
	tenantID, err := r.Resolve(TenantIDKey)
	if err != nil {
		return nil, err
	}
	clientID, err := r.Resolve(ClientIDKey)
	if err != nil {
		return nil, err
	}
	clientSecret, err := r.Resolve(ClientSecretKey)
	if err != nil {
		return nil, err
	}

	// The authority host is always read as-is, in either mode, and never fails.
	authorityHost := r.store.lookup(AuthorityHostKey, r.ambient)

	return NewCredential(tenantID, clientID, clientSecret, WithAuthorityHost(authorityHost))
}

// ProjectEndpoint returns the Azure AI project endpoint.
func (r *Resolver) ProjectEndpoint() (string, error) {
	return r.Resolve(ProjectEndpointKey)
}

// OpenAIConfig returns the Azure OpenAI endpoint, API key and API version.
func (r *Resolver) OpenAIConfig() (*OpenAIConfig, error) {
	endpoint, err := r.Resolve(OpenAIEndpointKey)
	if err != nil {
		return nil, err
	}
	apiKey, err := r.Resolve(OpenAIAPIKeyKey)
	if err != nil {
		return nil, err
	}
	apiVersion, err := r.Resolve(OpenAIVersionKey)
	if err != nil {
		return nil, err
	}

	return &OpenAIConfig{
		Endpoint:   endpoint,
		APIKey:     apiKey,
		APIVersion: apiVersion,
	}, nil
}
