package flags

import (
	"flag"
	"io"
	"reflect"
	"testing"
)

func TestBoolFlag(t *testing.T) {
	var f BoolFlag

	if f.Value != false || f.WasSet != false {
		t.Fatalf("expected default false/unset, got value=%v set=%v", f.Value, f.WasSet)
	}

	if err := f.Set("true"); err != nil {
		t.Fatalf("unexpected error setting true: %v", err)
	}
	if !f.Value || !f.WasSet {
		t.Fatalf("expected true/set after Set(true), got value=%v set=%v", f.Value, f.WasSet)
	}

	f = BoolFlag{}
	if err := f.Set("false"); err != nil {
		t.Fatalf("unexpected error setting false: %v", err)
	}
	if f.Value || !f.WasSet {
		t.Fatalf("expected false/set after Set(false), got value=%v set=%v", f.Value, f.WasSet)
	}

	f = BoolFlag{}
	if err := f.Set(""); err != nil {
		t.Fatalf("unexpected error setting empty: %v", err)
	}
	if !f.Value || !f.WasSet {
		t.Fatalf("expected true/set after Set(\"\"), got value=%v set=%v", f.Value, f.WasSet)
	}

	f = BoolFlag{}
	if err := f.Set("invalid"); err == nil {
		t.Fatal("expected error for invalid value")
	}

	f = BoolFlag{Value: true}
	if f.String() != "true" {
		t.Fatalf("expected String()=\"true\", got %q", f.String())
	}
	if !f.IsBoolFlag() {
		t.Fatal("expected IsBoolFlag() to return true")
	}
}

func TestBoolFlagResolve(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		fallback bool
		want     bool
	}{
		{"unset keeps fallback true", nil, true, true},
		{"unset keeps fallback false", nil, false, false},
		{"bare flag enables", []string{"--journal"}, false, true},
		{"explicit false overrides fallback", []string{"--journal=false"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f BoolFlag
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			fs.Var(&f, "journal", "record runs")
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if got := f.Resolve(tt.fallback); got != tt.want {
				t.Errorf("Resolve(%v) = %v, want %v", tt.fallback, got, tt.want)
			}
		})
	}
}

func TestCommonFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	root := AddRootFlag(fs)
	cfg := AddConfigFlag(fs)
	limit := AddLimitFlag(fs, 20)
	verbose := AddVerboseFlag(fs)
	quiet := AddQuietFlag(fs)
	force := AddForceFlag(fs)

	if err := fs.Parse([]string{"-r", "/work", "-c", "alt.toml", "-l", "5", "-v", "-q", "-f"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if *root != "/work" || *cfg != "alt.toml" || *limit != 5 || !*verbose || !*quiet || !*force {
		t.Fatalf("unexpected values root=%q cfg=%q limit=%d verbose=%v quiet=%v force=%v",
			*root, *cfg, *limit, *verbose, *quiet, *force)
	}
}

func TestParseInterspersed(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantPos    []string
		wantDryRun bool
	}{
		{"no args", nil, nil, false},
		{"flag first", []string{"--dry-run", "foo"}, []string{"foo"}, true},
		{"flag last", []string{"foo", "bar", "--dry-run"}, []string{"foo", "bar"}, true},
		{"flag between", []string{"foo", "--dry-run", "bar"}, []string{"foo", "bar"}, true},
		{"double dash stops flags", []string{"foo", "--", "--dry-run"}, []string{"foo", "--dry-run"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("run", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			dryRun := fs.Bool("dry-run", false, "")
			got, err := ParseInterspersed(fs, tt.args)
			if err != nil {
				t.Fatalf("ParseInterspersed() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.wantPos) {
				t.Errorf("positional = %q, want %q", got, tt.wantPos)
			}
			if *dryRun != tt.wantDryRun {
				t.Errorf("dry-run = %v, want %v", *dryRun, tt.wantDryRun)
			}
		})
	}
}

func TestParseInterspersedUnknownFlag(t *testing.T) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := ParseInterspersed(fs, []string{"foo", "--nope"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}
