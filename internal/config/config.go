// Package config loads and validates parser configuration from YAML files
// and environment variables.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Engine         EngineConfig         `yaml:"engine"`
	Vocab          VocabConfig          `yaml:"vocab"`
	Arbiter        ArbiterConfig        `yaml:"arbiter"`
	Repair         RepairConfig         `yaml:"repair"`
	OrderValidator OrderValidatorConfig `yaml:"order_validator"`
	Output         OutputConfig         `yaml:"output"`
	Storage        StorageConfig        `yaml:"storage"`
	Observability  ObservabilityConfig  `yaml:"observability"`
}

// EngineConfig holds segmentation and extraction knobs.
type EngineConfig struct {
	FieldDelimiter              string `yaml:"field_delimiter"`
	MaxConcurrentPages          int    `yaml:"max_concurrent_pages"`
	WeakStartRequiresAlphabetic bool   `yaml:"weak_start_requires_alphabetic"`
	PrimaryScriptPattern        string `yaml:"primary_script_pattern"`
	SecondaryScriptPattern      string `yaml:"secondary_script_pattern"`
	SecondaryRunPattern         string `yaml:"secondary_run_pattern"`
}

// VocabConfig lists the closed tag vocabularies.
type VocabConfig struct {
	POS            []string          `yaml:"pos"`
	Regions        []string          `yaml:"regions"`
	Classes        []string          `yaml:"classes"`
	Genders        []string          `yaml:"genders"`
	Numbers        []string          `yaml:"numbers"`
	POSAliases     map[string]string `yaml:"pos_aliases"`
	RegionAliases  map[string]string `yaml:"region_aliases"`
	NeverHeadwords []string          `yaml:"never_headwords"`
	Placeholders   []string          `yaml:"placeholders"`
}

// ArbiterConfig holds the language arbitration thresholds.
type ArbiterConfig struct {
	StrongCommonness     float64  `yaml:"strong_commonness"`
	ModerateCommonness   float64  `yaml:"moderate_commonness"`
	MaxHeadwordTokens    int      `yaml:"max_headword_tokens"`
	OrthographicPatterns []string `yaml:"orthographic_patterns"`
	HeadwordShape        string   `yaml:"headword_shape"`
	// LexiconPath points at an external "word zipf" table; empty selects
	// the built-in English table.
	LexiconPath string `yaml:"lexicon_path"`
}

// RepairConfig holds the coalescing pass toggles.
type RepairConfig struct {
	PrefixRepair               bool   `yaml:"prefix_repair"`
	RequireRegionCompatibility bool   `yaml:"require_region_compatibility"`
	PhrasePOS                  string `yaml:"phrase_pos"`
}

// OrderValidatorConfig holds the alternate front-end knobs.
type OrderValidatorConfig struct {
	ResyncThreshold           int      `yaml:"resync_threshold"`
	POSMarkerPattern          string   `yaml:"pos_marker_pattern"`
	ContinuationPrefixPattern string   `yaml:"continuation_prefix_pattern"`
	BadHeadwords              []string `yaml:"bad_headwords"`
	HeadwordShape             string   `yaml:"headword_shape"`
}

// OutputConfig names the run artifacts.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	EntriesJSONL string `yaml:"entries_jsonl"`
	EntriesJSON  string `yaml:"entries_json"`
	IssuesJSONL  string `yaml:"issues_jsonl"`
}

// StorageConfig configures the sqlite store. An empty path disables it.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the configuration tuned for the Beja-Arabic-English
// dictionary scans this parser was built against.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			FieldDelimiter:              "*",
			MaxConcurrentPages:          4,
			WeakStartRequiresAlphabetic: true,
			PrimaryScriptPattern:        `[A-Za-z]`,
			SecondaryScriptPattern:      `[\x{0600}-\x{06FF}]`,
			SecondaryRunPattern:         `[\x{0600}-\x{06FF}][\x{0600}-\x{06FF}\s،؛()\-]*`,
		},
		Vocab: VocabConfig{
			POS:            []string{"Adj", "Adv", "Con", "Dem", "Intj", "N", "Num", "Phr", "Pps", "Pron", "V"},
			Regions:        []string{"Er", "Su", "Eg"},
			Classes:        []string{"Cush", "Sem"},
			Genders:        []string{"m", "f", "mf"},
			Numbers:        []string{"sg", "pl"},
			POSAliases:     map[string]string{"Ady": "Adv"},
			RegionAliases:  map[string]string{"S": "Su"},
			NeverHeadwords: []string{"sg", "pl", "m", "f", "mf", "-", "_", "="},
			Placeholders:   []string{"-", "_"},
		},
		Arbiter: ArbiterConfig{
			StrongCommonness:   5.0,
			ModerateCommonness: 4.5,
			MaxHeadwordTokens:  3,
			OrthographicPatterns: []string{
				`(aa|ii|uu|oo|ee)`,
				`'`,
				`/t$`,
			},
			HeadwordShape: `^[a-z][a-z']*(?:/[a-z])?$`,
		},
		Repair: RepairConfig{
			PrefixRepair:               true,
			RequireRegionCompatibility: true,
			PhrasePOS:                  "Phr",
		},
		OrderValidator: OrderValidatorConfig{
			ResyncThreshold:           10,
			POSMarkerPattern:          `(?i)\b(n|v|adj|adv|pron|prep|conj|interj)\.`,
			ContinuationPrefixPattern: `(?i)^(def\.|cf\b|sg\.|pl\.|see\b|also\b)`,
			BadHeadwords:              []string{"ii", "iii", "iv", "vi", "vii", "viii", "ix", "xi", "xii"},
			HeadwordShape:             `^[a-z][a-z'/\-]{1,30}$`,
		},
		Output: OutputConfig{
			Dir:          "data/output",
			EntriesJSONL: "entries.jsonl",
			EntriesJSON:  "entries.json",
			IssuesJSONL:  "issues.jsonl",
		},
		Storage: StorageConfig{},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "console",
		},
	}
}

// Load builds a Config from defaults, an optional YAML file, and
// environment overrides, in that order, then validates it.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Observability.LogFormat = v
	}
	if v := os.Getenv("BEJADICT_DELIMITER"); v != "" {
		c.Engine.FieldDelimiter = v
	}
	if v := os.Getenv("BEJADICT_LEXICON"); v != "" {
		c.Arbiter.LexiconPath = v
	}
	if v := os.Getenv("BEJADICT_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("BEJADICT_DB"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("BEJADICT_MAX_PAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Engine.MaxConcurrentPages = n
		}
	}
	if v := os.Getenv("BEJADICT_RESYNC_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.OrderValidator.ResyncThreshold = n
		}
	}
}

// Validate checks invariants the engine relies on.
func (c *Config) Validate() error {
	if n := len([]rune(c.Engine.FieldDelimiter)); n != 1 {
		return fmt.Errorf("config: engine.field_delimiter must be one rune, got %q", c.Engine.FieldDelimiter)
	}
	if c.Engine.MaxConcurrentPages < 1 {
		return fmt.Errorf("config: engine.max_concurrent_pages must be >= 1, got %d", c.Engine.MaxConcurrentPages)
	}
	if c.Arbiter.ModerateCommonness > c.Arbiter.StrongCommonness {
		return fmt.Errorf("config: arbiter.moderate_commonness %.2f exceeds strong_commonness %.2f",
			c.Arbiter.ModerateCommonness, c.Arbiter.StrongCommonness)
	}
	if c.Arbiter.MaxHeadwordTokens < 1 {
		return fmt.Errorf("config: arbiter.max_headword_tokens must be >= 1, got %d", c.Arbiter.MaxHeadwordTokens)
	}
	if c.OrderValidator.ResyncThreshold < 1 {
		return fmt.Errorf("config: order_validator.resync_threshold must be >= 1, got %d", c.OrderValidator.ResyncThreshold)
	}
	if len(c.Vocab.Regions) == 0 {
		return fmt.Errorf("config: vocab.regions must not be empty")
	}

	patterns := map[string]string{
		"engine.primary_script_pattern":              c.Engine.PrimaryScriptPattern,
		"engine.secondary_script_pattern":            c.Engine.SecondaryScriptPattern,
		"engine.secondary_run_pattern":               c.Engine.SecondaryRunPattern,
		"arbiter.headword_shape":                     c.Arbiter.HeadwordShape,
		"order_validator.pos_marker_pattern":         c.OrderValidator.POSMarkerPattern,
		"order_validator.continuation_prefix_pattern": c.OrderValidator.ContinuationPrefixPattern,
		"order_validator.headword_shape":             c.OrderValidator.HeadwordShape,
	}
	for name, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	for _, p := range c.Arbiter.OrthographicPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("config: arbiter.orthographic_patterns %q: %w", p, err)
		}
	}
	return nil
}
