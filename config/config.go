package config

import (
	_ "embed"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/betterleaks/regexgrep"
	"github.com/betterleaks/regexgrep/regexp"
	"github.com/betterleaks/regexgrep/scan"
	"github.com/go-viper/mapstructure/v2"
	goversion "github.com/hashicorp/go-version"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// DefaultConfig is the config used when none is supplied.
//
//go:embed regexgrep.toml
var DefaultConfig string

const defaultConcurrency = 4

// FileConfig is the raw shape of a regexgrep TOML file.
type FileConfig struct {
	// MinVersion is the oldest regexgrep release the file works with
	MinVersion string `koanf:"minVersion"`

	Engine       string   `koanf:"engine"`
	SkipSymlinks bool     `koanf:"skipSymlinks"`
	SkipBinary   bool     `koanf:"skipBinary"`
	MaxFileSize  int64    `koanf:"maxFileSize"`
	Concurrency  int      `koanf:"concurrency"`
	Ignore       []string `koanf:"ignore"`

	Queries []QueryConfig `koanf:"queries"`

	currentVersion string
}

// QueryConfig is one [[queries]] table.
type QueryConfig struct {
	Name    string `koanf:"name"`
	Dir     string `koanf:"dir"`
	Glob    string `koanf:"glob"`
	Pattern string `koanf:"pattern"`

	// Groups accepts either an array or a string such as "2 1" or "2,1"
	Groups   []int    `koanf:"groups"`
	Keywords []string `koanf:"keywords"`
	Engine   string   `koanf:"engine"`
	Ignore   []string `koanf:"ignore"`
}

// Config is a validated configuration.
type Config struct {
	// Path is where the config was loaded from, empty for the default
	Path string

	Engine      string
	Concurrency int

	// Options applied to every query, including ad hoc grep queries
	Ignore       []string
	SkipSymlinks bool
	SkipBinary   bool
	MaxFileSize  int64

	Queries []scan.Query
}

// Parse decodes TOML content into a FileConfig.
func Parse(data []byte) (FileConfig, error) {
	var fc FileConfig

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), toml.Parser()); err != nil {
		return fc, fmt.Errorf("%w: parse config: %v", regexgrep.ErrInvalidArgument, err)
	}

	err := k.UnmarshalWithConf("", &fc, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToIntSliceHook,
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &fc,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return fc, fmt.Errorf("%w: decode config: %v", regexgrep.ErrInvalidArgument, err)
	}
	return fc, nil
}

// SetCurrentVersion tells the config which regexgrep release is loading it,
// for the minVersion check in Translate.
func (fc *FileConfig) SetCurrentVersion(v string) {
	fc.currentVersion = v
}

// Translate validates the file config and resolves per-query defaults.
func (fc *FileConfig) Translate() (Config, error) {
	if err := fc.checkVersion(); err != nil {
		return Config{}, err
	}
	if !regexp.ValidEngine(fc.Engine) {
		return Config{}, fmt.Errorf("%w: unknown engine %q", regexgrep.ErrInvalidArgument, fc.Engine)
	}
	if fc.Concurrency < 0 {
		return Config{}, fmt.Errorf("%w: concurrency must not be negative", regexgrep.ErrInvalidArgument)
	}

	if fc.MaxFileSize < 0 {
		return Config{}, fmt.Errorf("%w: maxFileSize must not be negative", regexgrep.ErrInvalidArgument)
	}

	cfg := Config{
		Engine:       fc.Engine,
		Concurrency:  fc.Concurrency,
		Ignore:       fc.Ignore,
		SkipSymlinks: fc.SkipSymlinks,
		SkipBinary:   fc.SkipBinary,
		MaxFileSize:  fc.MaxFileSize,
		Queries:      make([]scan.Query, 0, len(fc.Queries)),
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = defaultConcurrency
	}

	seen := make(map[string]struct{}, len(fc.Queries))
	for i, qc := range fc.Queries {
		if err := qc.check(); err != nil {
			return Config{}, fmt.Errorf("query[%d]: %w", i, err)
		}
		if _, ok := seen[qc.Name]; ok {
			return Config{}, fmt.Errorf("query[%d]: %w: duplicate name %q", i, regexgrep.ErrInvalidArgument, qc.Name)
		}
		seen[qc.Name] = struct{}{}

		q := cfg.Apply(scan.Query{
			Name:     qc.Name,
			Dir:      qc.Dir,
			Glob:     qc.Glob,
			Pattern:  qc.Pattern,
			Groups:   qc.Groups,
			Keywords: qc.Keywords,
			Engine:   qc.Engine,
			Ignore:   qc.Ignore,
		})
		if err := q.Validate(); err != nil {
			return Config{}, fmt.Errorf("query[%d] %q: %w", i, qc.Name, err)
		}
		cfg.Queries = append(cfg.Queries, q)
	}

	return cfg, nil
}

func (qc QueryConfig) check() error {
	if qc.Name == "" {
		return fmt.Errorf("%w: name is required", regexgrep.ErrInvalidArgument)
	}
	if qc.Glob == "" {
		return fmt.Errorf("%w: glob is required", regexgrep.ErrInvalidArgument)
	}
	if qc.Pattern == "" {
		return fmt.Errorf("%w: pattern is required", regexgrep.ErrInvalidArgument)
	}
	if !regexp.ValidEngine(qc.Engine) {
		return fmt.Errorf("%w: unknown engine %q", regexgrep.ErrInvalidArgument, qc.Engine)
	}
	return nil
}

func (fc *FileConfig) checkVersion() error {
	if fc.MinVersion == "" || fc.currentVersion == "" {
		return nil
	}
	minimum, err := goversion.NewVersion(fc.MinVersion)
	if err != nil {
		return fmt.Errorf("%w: minVersion %q: %v", regexgrep.ErrInvalidArgument, fc.MinVersion, err)
	}
	current, err := goversion.NewVersion(fc.currentVersion)
	if err != nil {
		// development builds carry no parseable version
		return nil
	}
	if current.LessThan(minimum) {
		return fmt.Errorf("%w: config requires regexgrep %s or newer, running %s",
			regexgrep.ErrInvalidArgument, fc.MinVersion, fc.currentVersion)
	}
	return nil
}

// Apply fills in the config-wide options of q. The global ignore patterns
// come before the query's own; the engine and max file size are only set
// when q leaves them empty; skip options are switched on when either side
// asks for them.
func (c Config) Apply(q scan.Query) scan.Query {
	q.Ignore = append(append([]string{}, c.Ignore...), q.Ignore...)
	if q.Engine == "" {
		q.Engine = c.Engine
	}
	if q.MaxFileSize == 0 {
		q.MaxFileSize = c.MaxFileSize
	}
	q.SkipSymlinks = q.SkipSymlinks || c.SkipSymlinks
	q.SkipBinary = q.SkipBinary || c.SkipBinary
	return q
}

// Query returns the named query.
func (c Config) Query(name string) (scan.Query, bool) {
	for _, q := range c.Queries {
		if q.Name == name {
			return q, true
		}
	}
	return scan.Query{}, false
}

var intSliceType = reflect.TypeOf([]int{})

// stringToIntSliceHook decodes "2 1" or "2,1" into []int.
func stringToIntSliceHook(f reflect.Type, t reflect.Type, data any) (any, error) {
	if f.Kind() != reflect.String || t != intSliceType {
		return data, nil
	}
	fields := strings.FieldsFunc(data.(string), func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	groups := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid group index %q", field)
		}
		groups = append(groups, n)
	}
	return groups, nil
}
