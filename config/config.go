package config

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultAnnualIncome is assumed when neither ANNUAL_INCOME nor SALARY is set.
const DefaultAnnualIncome = 50000

// Timing groups every wait bound used while driving the portal. The SPA has
// no reliable load event, so all waits are fixed sleeps or bounded polls.
type Timing struct {
	PageSettle      time.Duration `yaml:"page_settle"`       // after full navigation
	TabSettle       time.Duration `yaml:"tab_settle"`        // after clicking a category tab
	HoverSettle     time.Duration `yaml:"hover_settle"`      // before reading hover-revealed controls
	ScanSettle      time.Duration `yaml:"scan_settle"`       // before enumerating cards on a page
	CardWait        time.Duration `yaml:"card_wait"`         // grid cards on the listings view
	CardRetryWait   time.Duration `yaml:"card_retry_wait"`   // grid cards after a reload
	DetailWait      time.Duration `yaml:"detail_wait"`       // detail page indicators (rate-limit tolerant)
	DetailGiveUp    time.Duration `yaml:"detail_give_up"`    // extra wait before proceeding degraded
	LoginFieldWait  time.Duration `yaml:"login_field_wait"`  // identity-provider form fields
	LoginSettle     time.Duration `yaml:"login_settle"`      // after submitting credentials
	ApplySettle     time.Duration `yaml:"apply_settle"`      // after clicking Apply Now
	DialogWait      time.Duration `yaml:"dialog_wait"`       // confirmation dialog checkbox
	SubmitSettle    time.Duration `yaml:"submit_settle"`     // after clicking Submit
	PollInterval    time.Duration `yaml:"poll_interval"`     // bounded-poll step
	PageChangeWait  time.Duration `yaml:"page_change_wait"`  // pagination fingerprint ceiling
	PageChangeCheck time.Duration `yaml:"page_change_check"` // pagination fingerprint step
	ActionDelayMin  time.Duration `yaml:"action_delay_min"`  // randomized inter-action delay
	ActionDelayMax  time.Duration `yaml:"action_delay_max"`
}

// UnmarshalYAML accepts Go duration strings ("500ms", "1m30s") for every
// timing key. Keys absent from the file keep their current value.
func (t *Timing) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	fields := map[string]*time.Duration{
		"page_settle":       &t.PageSettle,
		"tab_settle":        &t.TabSettle,
		"hover_settle":      &t.HoverSettle,
		"scan_settle":       &t.ScanSettle,
		"card_wait":         &t.CardWait,
		"card_retry_wait":   &t.CardRetryWait,
		"detail_wait":       &t.DetailWait,
		"detail_give_up":    &t.DetailGiveUp,
		"login_field_wait":  &t.LoginFieldWait,
		"login_settle":      &t.LoginSettle,
		"apply_settle":      &t.ApplySettle,
		"dialog_wait":       &t.DialogWait,
		"submit_settle":     &t.SubmitSettle,
		"poll_interval":     &t.PollInterval,
		"page_change_wait":  &t.PageChangeWait,
		"page_change_check": &t.PageChangeCheck,
		"action_delay_min":  &t.ActionDelayMin,
		"action_delay_max":  &t.ActionDelayMax,
	}

	for key, v := range raw {
		dst, ok := fields[key]
		if !ok {
			return fmt.Errorf("unknown timing key %q", key)
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("timing key %q: %w", key, err)
		}
		*dst = d
	}
	return nil
}

// Config holds all runtime configuration for the bot. Credentials and income
// come from the environment (.env supported); everything else has defaults
// and may be overridden by an optional YAML file.
type Config struct {
	BaseURL      string `yaml:"base_url"`
	Headless     bool   `yaml:"headless"`
	UserDataDir  string `yaml:"user_data_dir"`
	Username     string `yaml:"-"`
	Password     string `yaml:"-"`
	AnnualIncome int    `yaml:"annual_income"`
	Timing       Timing `yaml:"timing"`
}

// Default returns a Config populated with the portal defaults and the wait
// bounds the production run uses.
func Default() Config {
	return Config{
		BaseURL:  "https://housingconnect.nyc.gov/PublicWeb",
		Headless: false,
		Timing: Timing{
			PageSettle:      3 * time.Second,
			TabSettle:       2 * time.Second,
			HoverSettle:     500 * time.Millisecond,
			ScanSettle:      time.Second,
			CardWait:        15 * time.Second,
			CardRetryWait:   60 * time.Second,
			DetailWait:      45 * time.Second,
			DetailGiveUp:    10 * time.Second,
			LoginFieldWait:  10 * time.Second,
			LoginSettle:     5 * time.Second,
			ApplySettle:     2 * time.Second,
			DialogWait:      5 * time.Second,
			SubmitSettle:    3 * time.Second,
			PollInterval:    500 * time.Millisecond,
			PageChangeWait:  5 * time.Second,
			PageChangeCheck: 500 * time.Millisecond,
			ActionDelayMin:  2 * time.Second,
			ActionDelayMax:  5 * time.Second,
		},
	}
}

// Load builds the runtime configuration: defaults, then the optional YAML
// file at path (skipped silently when absent), then environment variables.
// A .env file in the working directory is honored.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg.Username = os.Getenv("USERNAME")
	cfg.Password = os.Getenv("PASSWORD")
	cfg.AnnualIncome = envInt("ANNUAL_INCOME", envInt("SALARY", DefaultAnnualIncome))
	if dir := os.Getenv("BOT_DATA_DIR"); dir != "" {
		cfg.UserDataDir = dir
	}

	return cfg, nil
}

// LotteriesURL is the paginated listing grid for both categories.
func (c Config) LotteriesURL() string {
	return c.BaseURL + "/search-lotteries"
}

// RandomActionDelay returns a randomized inter-action delay within the
// configured bounds, used to avoid portal rate limiting.
func (c Config) RandomActionDelay() time.Duration {
	min, max := c.Timing.ActionDelayMin, c.Timing.ActionDelayMax
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}
