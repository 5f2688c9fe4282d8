package ratelimit

import (
	"strings"
)

// unlimited lists "METHOD path" pairs that are never rate limited
var unlimited = map[string]bool{
	"GET /health": true,
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/parse/" matches "/parse/{locale}").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	var prefixMatch *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		if config.Path == path {
			return config
		}
		// Longest prefix wins among configs ending with "/"
		if strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			if prefixMatch == nil || len(config.Path) > len(prefixMatch.Path) {
				prefixMatch = config
			}
		}
	}

	return prefixMatch
}
