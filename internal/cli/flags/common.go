package flags

import "flag"

// AddRootFlag adds --root and -r flags for workspace root.
func AddRootFlag(fs *flag.FlagSet) *string {
	root := fs.String("root", ".", "workspace root")
	fs.StringVar(root, "r", ".", "workspace root (shorthand)")
	return root
}

// AddConfigFlag adds --config and -c flags for an explicit configuration file.
func AddConfigFlag(fs *flag.FlagSet) *string {
	cfg := fs.String("config", "", "configuration file (default: newer.jsonc, newer.json or newer.toml in root)")
	fs.StringVar(cfg, "c", "", "configuration file (shorthand)")
	return cfg
}

// AddLimitFlag adds --limit and -l flags for result limits.
func AddLimitFlag(fs *flag.FlagSet, defaultValue int) *int {
	limit := fs.Int("limit", defaultValue, "maximum results")
	fs.IntVar(limit, "l", defaultValue, "maximum results (shorthand)")
	return limit
}

// AddVerboseFlag adds --verbose and -v flags for verbose output.
func AddVerboseFlag(fs *flag.FlagSet) *bool {
	verbose := fs.Bool("verbose", false, "show detailed output")
	fs.BoolVar(verbose, "v", false, "show detailed output (shorthand)")
	return verbose
}

// AddDebugFlag adds --debug for timestamp-level tracing.
func AddDebugFlag(fs *flag.FlagSet) *bool {
	return fs.Bool("debug", false, "trace every stat and glob")
}

// AddForceFlag adds --force and -f flags for overwrite operations.
func AddForceFlag(fs *flag.FlagSet) *bool {
	force := fs.Bool("force", false, "overwrite existing files")
	fs.BoolVar(force, "f", false, "overwrite existing files (shorthand)")
	return force
}

// AddQuietFlag adds --quiet and -q flags for quiet mode.
func AddQuietFlag(fs *flag.FlagSet) *bool {
	quiet := fs.Bool("quiet", false, "suppress non-essential output")
	fs.BoolVar(quiet, "q", false, "suppress non-essential output (shorthand)")
	return quiet
}

// AddNoColorFlag adds --no-color.
func AddNoColorFlag(fs *flag.FlagSet) *bool {
	return fs.Bool("no-color", false, "disable colored output")
}

// AddJSONFlag adds --json for machine-readable output.
func AddJSONFlag(fs *flag.FlagSet) *bool {
	return fs.Bool("json", false, "print JSON instead of text")
}
