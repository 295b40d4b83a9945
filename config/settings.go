package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pelletier/go-toml"
)

// TracerKeys are the keys of the tracers of this module.
var TracerKeys = []string{"twiki.ll1", "twiki.lexer", "twiki.wiki", "twiki.config", "twiki.cli"}

// DefaultTraceLevel is used for tracers without a configured level.
const DefaultTraceLevel = "Error"

// Settings holds the twiki configuration. It implements schuko.Configuration.
type Settings struct {
	TraceLevel  map[string]string `toml:"tracelevel"` // tracer key -> level, "root" for all
	Wiki        WikiSettings      `toml:"wiki"`
	Parser      ParserSettings    `toml:"parser"`
	Interactive bool              `toml:"-"`
}

// WikiSettings are the settings of table [wiki].
type WikiSettings struct {
	LinkPrefix string `toml:"link-prefix"`
	AnchorBase int    `toml:"anchor-base"`
}

// ParserSettings are the settings of table [parser].
type ParserSettings struct {
	DumpTables bool `toml:"dump-tables"`
}

var _ schuko.Configuration = (*Settings)(nil)

// Default returns settings with default values.
func Default() *Settings {
	s := &Settings{}
	s.InitDefaults()
	return s
}

// Parse reads settings from TOML data. Keys not known to twiki are ignored.
func Parse(data []byte) (*Settings, error) {
	s := &Settings{}
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	s.InitDefaults()
	return s, nil
}

// Load reads settings from a TOML file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read configuration: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("malformed configuration file %s: %w", path, err)
	}
	tracer().Infof("configuration loaded from %s", path)
	return s, nil
}

// InitDefaults is part of interface schuko.Configuration.
func (s *Settings) InitDefaults() {
	if s.TraceLevel == nil {
		s.TraceLevel = make(map[string]string)
	}
	if _, ok := s.TraceLevel["root"]; !ok {
		s.TraceLevel["root"] = DefaultTraceLevel
	}
	if s.Wiki.LinkPrefix == "" {
		s.Wiki.LinkPrefix = "/pwdoc/ViewPage/"
	}
}

func splitKey(key string) (table, name string) {
	if i := strings.IndexByte(key, '.'); i >= 0 {
		return key[:i], key[i+1:]
	}
	return "", key
}

func (s *Settings) value(key string) (interface{}, bool) {
	table, name := splitKey(key)
	switch table {
	case "tracelevel":
		l, ok := s.TraceLevel[name]
		return l, ok
	case "wiki":
		switch name {
		case "link-prefix":
			return s.Wiki.LinkPrefix, true
		case "anchor-base":
			return s.Wiki.AnchorBase, true
		}
	case "parser":
		if name == "dump-tables" {
			return s.Parser.DumpTables, true
		}
	}
	return nil, false
}

// IsSet is part of interface schuko.Configuration.
func (s *Settings) IsSet(key string) bool {
	_, ok := s.value(key)
	return ok
}

// GetString is part of interface schuko.Configuration.
func (s *Settings) GetString(key string) string {
	v, ok := s.value(key)
	if !ok {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprintf("%v", v)
}

// GetInt is part of interface schuko.Configuration.
func (s *Settings) GetInt(key string) int {
	v, ok := s.value(key)
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case int:
		return x
	case string:
		n, err := strconv.Atoi(x)
		if err != nil {
			tracer().Errorf("configuration key %s is not an integer: %q", key, x)
		}
		return n
	}
	return 0
}

// GetBool is part of interface schuko.Configuration.
func (s *Settings) GetBool(key string) bool {
	v, ok := s.value(key)
	if !ok {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		b, _ := strconv.ParseBool(x)
		return b
	}
	return false
}

// IsInteractive is part of interface schuko.Configuration.
func (s *Settings) IsInteractive() bool {
	return s.Interactive
}

// LevelFor returns the configured trace level for a tracer key, falling back
// to the root level.
func (s *Settings) LevelFor(key string) string {
	if l, ok := s.TraceLevel[key]; ok && key != "root" {
		return l
	}
	if l, ok := s.TraceLevel["root"]; ok {
		return l
	}
	return DefaultTraceLevel
}

// Install makes s the global configuration (see package gconf) and sets the
// trace levels of all tracers of this module, plus the ones explicitly listed
// in table [tracelevel].
func Install(s *Settings) {
	gconf.Initialize(s)
	keys := append([]string{}, TracerKeys...)
	for key := range s.TraceLevel {
		if key != "root" && !contains(keys, key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys[len(TracerKeys):])
	for _, key := range keys {
		tracing.Select(key).SetTraceLevel(tracing.TraceLevelFromString(s.LevelFor(key)))
	}
	tracer().Debugf("configuration installed, root trace level is %s", s.LevelFor("root"))
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
