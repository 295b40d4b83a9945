package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const sample = `
[tracelevel]
root = "Info"
"twiki.ll1" = "Debug"

[wiki]
link-prefix = "/wiki/"
anchor-base = 7

[parser]
dump-tables = true

[unknown]
whatever = 1
`

func TestDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.config")
	defer teardown()
	//
	s := Default()
	if s.GetString("wiki.link-prefix") != "/pwdoc/ViewPage/" {
		t.Errorf("Expected default link prefix, have %q", s.GetString("wiki.link-prefix"))
	}
	if s.GetInt("wiki.anchor-base") != 0 || s.GetBool("parser.dump-tables") {
		t.Errorf("Expected zero anchor base and no table dumps by default")
	}
	if s.LevelFor("twiki.wiki") != DefaultTraceLevel {
		t.Errorf("Expected default trace level for twiki.wiki, have %s", s.LevelFor("twiki.wiki"))
	}
	if s.IsSet("wiki.color") || s.IsSet("nosection") {
		t.Errorf("Expected unknown keys not to be set")
	}
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.config")
	defer teardown()
	//
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	if s.GetString("wiki.link-prefix") != "/wiki/" {
		t.Errorf("Expected link prefix /wiki/, have %q", s.GetString("wiki.link-prefix"))
	}
	if s.GetInt("wiki.anchor-base") != 7 || s.GetString("wiki.anchor-base") != "7" {
		t.Errorf("Expected anchor base 7, have %d", s.GetInt("wiki.anchor-base"))
	}
	if !s.GetBool("parser.dump-tables") {
		t.Errorf("Expected table dumps to be switched on")
	}
	if s.GetString("tracelevel.twiki.ll1") != "Debug" || !s.IsSet("tracelevel.twiki.ll1") {
		t.Errorf("Expected trace level Debug for twiki.ll1")
	}
	if s.LevelFor("twiki.lexer") != "Info" {
		t.Errorf("Expected root level to apply to twiki.lexer, have %s", s.LevelFor("twiki.lexer"))
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.config")
	defer teardown()
	//
	s, err := Parse([]byte("[tracelevel]\n\"twiki.wiki\" = \"Debug\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if s.LevelFor("twiki.ll1") != DefaultTraceLevel || s.LevelFor("twiki.wiki") != "Debug" {
		t.Errorf("Expected root level to default to %s", DefaultTraceLevel)
	}
	if s.Wiki.LinkPrefix != "/pwdoc/ViewPage/" {
		t.Errorf("Expected default link prefix, have %q", s.Wiki.LinkPrefix)
	}
}

func TestMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.config")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "twiki.toml")
	if err := os.WriteFile(path, []byte("[wiki\nlink-prefix = "), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("Expected error naming %s, got %v", path, err)
	}
	if _, err = Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("Expected error for missing configuration file")
	}
}

func TestInstall(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.config")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "twiki.toml")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	Install(s)
	if gconf.GetString("wiki.link-prefix") != "/wiki/" || gconf.GetInt("wiki.anchor-base") != 7 {
		t.Errorf("Expected installed settings to be visible through gconf")
	}
	if tracing.Select("twiki.ll1").GetTraceLevel() != tracing.LevelDebug {
		t.Errorf("Expected tracer twiki.ll1 to trace at Debug level")
	}
	if tracing.Select("twiki.lexer").GetTraceLevel() != tracing.LevelInfo {
		t.Errorf("Expected tracer twiki.lexer to trace at Info level")
	}
	Install(Default())
}
