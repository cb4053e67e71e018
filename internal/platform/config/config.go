// Package config reads settings from the environment, optionally seeded from a TOML file
// keys are env style names, a Conf made with Prefix("CGEO_") reads CGEO_<key>
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

// Conf is a prefixed view over the environment and the loaded file
type Conf struct {
	prefix string
	file   map[string]string
}

// New reads the environment only
func New() Conf { return Conf{} }

// Load reads a TOML file, tables flatten into env style names
// so [service.pgsql] dburl becomes SERVICE_PGSQL_DBURL, the environment still wins
func Load(path string) (Conf, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Conf{}, fmt.Errorf("config: %w", err)
	}
	return Parse(b)
}

// Parse is Load on an in memory document
func Parse(doc []byte) (Conf, error) {
	var tree map[string]any
	if err := toml.Unmarshal(doc, &tree); err != nil {
		return Conf{}, fmt.Errorf("config: %w", err)
	}
	file := map[string]string{}
	flatten(file, "", tree)
	return Conf{file: file}, nil
}

func flatten(dst map[string]string, prefix string, tree map[string]any) {
	for k, v := range tree {
		key := strings.ToUpper(prefix + k)
		switch v := v.(type) {
		case map[string]any:
			flatten(dst, key+"_", v)
		case []any:
			parts := make([]string, len(v))
			for i, p := range v {
				parts[i] = fmt.Sprint(p)
			}
			dst[key] = strings.Join(parts, ",")
		case time.Time:
			dst[key] = v.Format(time.RFC3339)
		default:
			dst[key] = fmt.Sprint(v)
		}
	}
}

// Prefix narrows the view, prefixes stack
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p, file: c.file} }

// Keys lists the file keys under the current prefix, sorted
func (c Conf) Keys() []string {
	var out []string
	for k := range c.file {
		if strings.HasPrefix(k, c.prefix) {
			out = append(out, strings.TrimPrefix(k, c.prefix))
		}
	}
	sort.Strings(out)
	return out
}

// Lookup finds key in the environment, then in the file, blank values count as unset
func (c Conf) Lookup(key string) (string, bool) {
	name := c.prefix + key
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v, true
	}
	if v := strings.TrimSpace(c.file[name]); v != "" {
		return v, true
	}
	return "", false
}

// MayString is the value of key or def
func (c Conf) MayString(key, def string) string {
	if v, ok := c.Lookup(key); ok {
		return v
	}
	return def
}

// MayInt is key as an int, def when unset or unparsable
func (c Conf) MayInt(key string, def int) int {
	return parse(c, key, def, strconv.Atoi)
}

// MayBool is key as a bool, def when unset or unparsable
func (c Conf) MayBool(key string, def bool) bool {
	return parse(c, key, def, strconv.ParseBool)
}

// MayDuration is key as a duration like 250ms or 2s, def when unset or unparsable
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return parse(c, key, def, time.ParseDuration)
}

// MayFloat is key as a float64, def when unset or unparsable
func (c Conf) MayFloat(key string, def float64) float64 {
	return parse(c, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayCSV splits key on commas and drops blanks, def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	v, ok := c.Lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func parse[T any](c Conf, key string, def T, fn func(string) (T, error)) T {
	v, ok := c.Lookup(key)
	if !ok {
		return def
	}
	out, err := fn(v)
	if err != nil {
		log.Warn().Str("key", c.prefix+key).Str("value", v).Interface("default", def).Msg("invalid config value, using default")
		return def
	}
	return out
}
