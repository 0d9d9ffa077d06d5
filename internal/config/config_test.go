package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/formula"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"formula.toml", FormatTOML},
		{"formula.yaml", FormatYAML},
		{"formula.YML", FormatYAML},
		{"formula", FormatTOML},
		{"dir.yaml/formula.conf", FormatTOML},
	}
	for _, tt := range tests {
		if got := DetectFormat(tt.path); got != tt.want {
			t.Errorf("DetectFormat(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		src    string
	}{
		{
			name:   "toml",
			format: FormatTOML,
			src: `scale = 2
rounding = "half_even"
log_level = "debug"

[formulas]
bonus = "bonus = (grossProfit - base) * rate"
`,
		},
		{
			name:   "yaml",
			format: FormatYAML,
			src: `scale: 2
rounding: half_even
log_level: debug
formulas:
  bonus: "bonus = (grossProfit - base) * rate"
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.src), tt.format)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if cfg.Scale != 2 {
				t.Errorf("Scale = %d, want 2", cfg.Scale)
			}
			if cfg.Rounding != formula.HalfEven {
				t.Errorf("Rounding = %v, want half_even", cfg.Rounding)
			}
			if cfg.Level() != zerolog.DebugLevel {
				t.Errorf("Level() = %v, want debug", cfg.Level())
			}
			f, err := cfg.Formula("bonus")
			if err != nil {
				t.Fatalf("Formula() error = %v", err)
			}
			if f != "bonus = (grossProfit - base) * rate" {
				t.Errorf("Formula() = %q", f)
			}
			if _, err := cfg.Formula("salary"); err == nil {
				t.Error("Formula() found an unknown name")
			}
		})
	}
}

func TestParseDefaults(t *testing.T) {
	for _, f := range []Format{FormatTOML, FormatYAML} {
		cfg, err := Parse(nil, f)
		if err != nil {
			t.Fatalf("Parse(%v) error = %v", f, err)
		}
		if cfg.Scale != formula.DefaultScale || cfg.Rounding != formula.HalfUp || cfg.Level() != zerolog.InfoLevel {
			t.Errorf("Parse(%v) = %+v, want defaults", f, cfg)
		}
		if len(cfg.Names()) != 0 {
			t.Errorf("Parse(%v) has formulas %q", f, cfg.Names())
		}
	}
	cfg, err := Parse([]byte("scale = 0\n"), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scale != 0 {
		t.Errorf("explicit zero scale became %d", cfg.Scale)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		src    string
	}{
		{"toml-syntax", FormatTOML, "scale = "},
		{"yaml-syntax", FormatYAML, "scale: [1"},
		{"rounding", FormatTOML, `rounding = "sideways"`},
		{"rounding-yaml", FormatYAML, "rounding: sideways"},
		{"scale-neg", FormatTOML, "scale = -1"},
		{"scale-large", FormatYAML, "scale: 1000000"},
		{"level", FormatTOML, `log_level = "loud"`},
		{"empty-formula", FormatTOML, "[formulas]\nbonus = \"  \"\n"},
		{"format", Format(9), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if cfg, err := Parse([]byte(tt.src), tt.format); err == nil {
				t.Errorf("Parse() = %+v, want error", cfg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formula.yml")
	src := "scale: 1\nformulas:\n  b: a + b\n  a: a - b\n"
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FORMULA_TEST_DIR", dir)
	cfg, err := Load("$FORMULA_TEST_DIR/formula.yml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Scale != 1 {
		t.Errorf("Scale = %d, want 1", cfg.Scale)
	}
	if names := cfg.Names(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %q, want [a b]", names)
	}

	a := cfg.Arithmetic(zerolog.Nop())
	f, _ := cfg.Formula("a")
	r, err := a.ComputeByFormula(f, formula.Text("0.25"), formula.Int(0))
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != "0.3" {
		t.Errorf("a = %v, want 0.3", r)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}
