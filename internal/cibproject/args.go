// Package cibproject wires a worked example project together: the daily
// routine flow graphs and the notification dispatcher from
// original_source/examples/flow_daily_routine/main.cpp, composed through
// internal/nexus and consumed by cmd/cibdemo.
package cibproject

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/cib-project/cib/internal/nexus"
)

// ProjectArgs is the project's value-level argument tuple — the Go
// analogue of spec.md's "tuple of compile-time constants supplied at
// composition entry" (internal/nexus.Args is an untyped map; ProjectArgs
// is the typed, validated shape cmd/cibdemo actually loads).
//
// Precedence, following the teacher's internal/config: environment
// variables > config file > defaults.
type ProjectArgs struct {
	Person        PersonArgs        `toml:"person"`
	Notifications NotificationsArgs `toml:"notifications"`
	Log           LogArgs           `toml:"log"`
}

// PersonArgs names whose daily routine is being composed.
type PersonArgs struct {
	Name        string `toml:"name"`
	WorkWeekday bool   `toml:"work_weekday"` // whether today is a workday (gates the office commute steps)
}

// NotificationsArgs controls whether the notification center component
// participates in composition at all (spec.md §4.1's conditional<Pred,
// Body> applied at the project level, not just within one service).
type NotificationsArgs struct {
	Enabled  bool `toml:"enabled"`
	Priority int  `toml:"priority"` // 0-3; calendar reminders need at least this priority, health nudges exactly it, weather alerts ignore it
}

// LogArgs controls the demo's structured logging.
type LogArgs struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// Load reads a ProjectArgs from a TOML file and overlays environment
// variables, following the teacher's internal/config.Load: defaults, then
// file, then env (env always wins). configPath "" triggers the same
// search-order fallback as the teacher's resolveConfigPath.
func Load(configPath string) (*ProjectArgs, error) {
	args := &ProjectArgs{
		Person: PersonArgs{
			Name:        "Alex",
			WorkWeekday: true,
		},
		Notifications: NotificationsArgs{
			Enabled:  true,
			Priority: 1,
		},
		Log: LogArgs{Level: "info"},
	}

	if err := args.loadFile(configPath); err != nil {
		return nil, err
	}
	args.applyEnv()

	if err := args.Validate(); err != nil {
		return nil, err
	}
	return args, nil
}

func (a *ProjectArgs) loadFile(configPath string) error {
	path := resolveConfigPath(configPath)
	if path == "" {
		return nil
	}
	if _, err := toml.DecodeFile(path, a); err != nil {
		return fmt.Errorf("reading project args file %s: %w", path, err)
	}
	return nil
}

// resolveConfigPath mirrors the teacher's search order: explicit path,
// then CIBDEMO_CONFIG, then ./cibdemo.toml, then ~/.config/cibdemo/cibdemo.toml.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv("CIBDEMO_CONFIG"); p != "" {
		return p
	}
	if _, err := os.Stat("cibdemo.toml"); err == nil {
		return "cibdemo.toml"
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := home + "/.config/cibdemo/cibdemo.toml"
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (a *ProjectArgs) applyEnv() {
	envOverrideString("CIBDEMO_PERSON_NAME", &a.Person.Name)
	envOverrideBool("CIBDEMO_WORK_WEEKDAY", &a.Person.WorkWeekday)
	envOverrideBool("CIBDEMO_NOTIFICATIONS_ENABLED", &a.Notifications.Enabled)
	envOverrideInt("CIBDEMO_NOTIFICATIONS_PRIORITY", &a.Notifications.Priority)
	envOverrideString("CIBDEMO_LOG_LEVEL", &a.Log.Level)
}

func envOverrideString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "true" || v == "1"
	}
}

func envOverrideInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			*dst = n
		}
	}
}

// Validate checks that required fields are present and well-formed.
func (a *ProjectArgs) Validate() error {
	if a.Person.Name == "" {
		return fmt.Errorf("person.name is required: set it in the config file, or CIBDEMO_PERSON_NAME env var")
	}
	if a.Notifications.Priority < 0 || a.Notifications.Priority > 3 {
		return fmt.Errorf("notifications.priority must be between 0 and 3, got %d", a.Notifications.Priority)
	}
	return nil
}

// ToNexusArgs converts the typed ProjectArgs into the untyped nexus.Args
// tuple the project's Conditional nodes evaluate against.
func (a *ProjectArgs) ToNexusArgs() nexus.Args {
	return nexus.Args{
		"person_name":            a.Person.Name,
		"work_weekday":           a.Person.WorkWeekday,
		"notifications_enabled":  a.Notifications.Enabled,
		"notifications_priority": a.Notifications.Priority,
	}
}
