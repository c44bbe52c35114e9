package envvar

import (
	"strconv"
	"strings"

	"github.com/aatuh/envvar"
)

// Adapter reads service settings from the process environment through
// github.com/aatuh/envvar. Unset or empty values fall back to defaults.
type Adapter struct{}

// New returns an Adapter.
func New() *Adapter {
	return &Adapter{}
}

// LoadEnvFiles loads dotenv files into the environment and panics when one
// cannot be read, so a misnamed ENV_FILES entry fails at startup.
func (a *Adapter) LoadEnvFiles(paths []string) {
	envvar.MustLoadEnvVars(paths)
}

// GetOr returns key or def.
func (a *Adapter) GetOr(key, def string) string {
	return envvar.GetOr(key, def)
}

// GetBoolOr parses key as a bool, e.g. ULID_MONOTONIC.
func (a *Adapter) GetBoolOr(key string, def bool) bool {
	return envvar.GetBoolOr(key, def)
}

// GetIntOr parses key as an int and returns def when it is unset or not
// a number.
func (a *Adapter) GetIntOr(key string, def int) int {
	v := envvar.Get(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

// GetListOr splits a comma-separated value, dropping blank items.
func (a *Adapter) GetListOr(key string, def []string) []string {
	v := envvar.Get(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
