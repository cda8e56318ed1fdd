// Package config assembles command options from a .env file, ORMSOURCE_*
// environment variables and command line flags, in increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/twtxwydavid/hibernate-orm/internal/common"
	"github.com/twtxwydavid/hibernate-orm/internal/mapping"
	"github.com/twtxwydavid/hibernate-orm/internal/metadata"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// Environment variables read by Load.
const (
	EnvMappings         = "ORMSOURCE_MAPPINGS"
	EnvPackages         = "ORMSOURCE_PACKAGES"
	EnvDir              = "ORMSOURCE_DIR"
	EnvDefaultLazy      = "ORMSOURCE_DEFAULT_LAZY"
	EnvDefaultCascade   = "ORMSOURCE_DEFAULT_CASCADE"
	EnvDefaultAccess    = "ORMSOURCE_DEFAULT_ACCESS"
	EnvIDColumn         = "ORMSOURCE_ID_COLUMN"
	EnvCascadeCacheSize = "ORMSOURCE_CASCADE_CACHE_SIZE"
	EnvVerbose          = "ORMSOURCE_VERBOSE"
)

// ErrNoInputs is returned when neither mapping documents nor packages are given.
var ErrNoInputs = errors.New("no mapping documents or packages to load")

// Options holds everything the ormsource command needs.
type Options struct {
	// MappingFiles are mapping document paths, in load order.
	MappingFiles []string
	// Packages are go/packages patterns of annotated model packages.
	Packages []string
	// Dir is the working directory packages are loaded from.
	Dir string
	// Output is the file the bound metadata is written to ("" = stdout).
	Output  string
	Check   bool
	Summary bool
	Verbose bool

	DefaultLazy      bool
	DefaultCascade   string
	DefaultAccess    string
	IDColumn         string
	CascadeCacheSize int
}

// Defaults returns the options a run starts from before the environment and
// flags are applied.
func Defaults() *Options {
	stock := mapping.StockDefaults()

	return &Options{
		DefaultLazy:      stock.Lazy,
		DefaultCascade:   stock.Cascade,
		DefaultAccess:    stock.Access,
		IDColumn:         source.DefaultMappingDefaults().IDColumnName,
		CascadeCacheSize: source.DefaultCascadeCacheSize,
	}
}

// Load reads envFiles (".env" when none are given; missing files are
// ignored), then the environment, then parses args.
func Load(args []string, envFiles ...string) (*Options, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	opts := Defaults()

	if err := opts.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	fs := opts.FlagSet(io.Discard)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Positional arguments are mapping documents.
	opts.MappingFiles = append(opts.MappingFiles, fs.Args()...)

	if len(opts.MappingFiles) == 0 && len(opts.Packages) == 0 {
		return nil, ErrNoInputs
	}

	return opts, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	return nil
}

// applyEnv copies every set ORMSOURCE_* variable into o.
func (o *Options) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvMappings); ok {
		o.MappingFiles = common.SplitList(v)
	}

	if v, ok := lookup(EnvPackages); ok {
		o.Packages = common.SplitList(v)
	}

	if v, ok := lookup(EnvDir); ok {
		o.Dir = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvDefaultCascade); ok {
		o.DefaultCascade = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvDefaultAccess); ok {
		o.DefaultAccess = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvIDColumn); ok {
		o.IDColumn = strings.TrimSpace(v)
	}

	for name, target := range map[string]*bool{EnvDefaultLazy: &o.DefaultLazy, EnvVerbose: &o.Verbose} {
		v, ok := lookup(name)
		if !ok {
			continue
		}

		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, v, err)
		}

		*target = b
	}

	if v, ok := lookup(EnvCascadeCacheSize); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvCascadeCacheSize, v, err)
		}

		o.CascadeCacheSize = n
	}

	return nil
}

// FlagSet returns the command line flags bound to o; current values of o
// are the flag defaults.
func (o *Options) FlagSet(output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("ormsource", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.Var(&listFlag{values: &o.MappingFiles}, "mapping", "mapping document to load (repeatable, comma separated)")
	fs.Var(&listFlag{values: &o.Packages}, "packages", "annotated packages to load (repeatable, comma separated)")
	fs.StringVar(&o.Dir, "dir", o.Dir, "directory packages are loaded from")
	fs.StringVar(&o.Output, "o", o.Output, "write bound metadata to this file instead of stdout")
	fs.BoolVar(&o.Check, "check", o.Check, "only validate the inputs")
	fs.BoolVar(&o.Summary, "summary", o.Summary, "print a one-line summary per entity instead of YAML")
	fs.BoolVar(&o.Verbose, "v", o.Verbose, "verbose (development) logging")
	fs.BoolVar(&o.DefaultLazy, "default-lazy", o.DefaultLazy, "associations are lazy unless declared otherwise")
	fs.StringVar(&o.DefaultCascade, "default-cascade", o.DefaultCascade, "cascade applied when none is declared")
	fs.StringVar(&o.DefaultAccess, "default-access", o.DefaultAccess, "property accessor applied when none is declared")
	fs.StringVar(&o.IDColumn, "id-column", o.IDColumn, "identifier column used when none is declared")
	fs.IntVar(&o.CascadeCacheSize, "cascade-cache", o.CascadeCacheSize, "number of cascade directives to memoize")

	return fs
}

// DocumentDefaults are the defaults written into documents that omit them.
func (o *Options) DocumentDefaults() mapping.Defaults {
	return mapping.Defaults{Lazy: o.DefaultLazy, Cascade: o.DefaultCascade, Access: o.DefaultAccess}
}

// BuildConfig returns the metadata build configuration.
func (o *Options) BuildConfig() metadata.Config {
	config := metadata.DefaultConfig()
	config.CascadeCacheSize = o.CascadeCacheSize
	config.Defaults = source.MappingDefaults{
		CascadeStyle:         o.DefaultCascade,
		PropertyAccessorName: o.DefaultAccess,
		AssociationsLazy:     o.DefaultLazy,
		IDColumnName:         o.IDColumn,
	}

	return config
}

// listFlag accumulates repeated and comma separated values. The first Set
// replaces values seeded from the environment.
type listFlag struct {
	values *[]string
	set    bool
}

func (l *listFlag) String() string {
	if l == nil || l.values == nil {
		return ""
	}

	return strings.Join(*l.values, ",")
}

func (l *listFlag) Set(value string) error {
	if !l.set {
		*l.values = nil
		l.set = true
	}

	*l.values = append(*l.values, common.SplitList(value)...)

	return nil
}
