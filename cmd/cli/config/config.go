package config

import (
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// EnvAPIURL names the environment variable holding the API base URL.
const EnvAPIURL = "ASSET_REGISTRY_API_URL"

const defaultAPIURL = "http://localhost:8080"

// APIURL returns the API base URL from the environment, or the local default.
func APIURL() string {
	if v := os.Getenv(EnvAPIURL); v != "" {
		return v
	}
	return defaultAPIURL
}

// ResolveAPIURL picks override when non-empty, else APIURL, and checks that
// the result is an absolute http(s) URL. A trailing slash is dropped.
func ResolveAPIURL(override string) (string, error) {
	raw := override
	if raw == "" {
		raw = APIURL()
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrapf(err, "invalid API URL %q", raw)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errors.Errorf("invalid API URL %q: want http(s)://host[:port]", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}
