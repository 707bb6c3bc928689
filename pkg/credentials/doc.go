// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package credentials resolves Azure identity credentials and service endpoints
from a dotenv file merged with the ambient process environment.

# Modes

AUTH_CREDENTIAL_MODE selects how configured values are interpreted:

  - env (default): the configured value is returned as-is.
  - system: the configured value names an ambient environment variable,
    and the value of that variable is returned. This keeps secrets out of
    the env file, which only records where to find them.

# Usage

	resolver, err := credentials.New(".env", &env.OSReader{})
	if err != nil {
		return err
	}
	cred, err := resolver.Credentials()
	endpoint, err := resolver.ProjectEndpoint()
	openAI, err := resolver.OpenAIConfig()

All failures are reported as *ConfigurationError.
*/
package credentials
