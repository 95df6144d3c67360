// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New returns a Config populated with defaults.
// - Load layers a YAML file, a dotenv file and BENCH_ env vars on top.
// - Validation failures wrap ErrInvalidConfig.
package config

// Preset is a named roster offered on the start screen.
type Preset struct {
	Name    string   `koanf:"name"`
	Players []string `koanf:"players"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// CommandQueueSize bounds the in-memory command queue.
	CommandQueueSize int `koanf:"command_queue_size"`

	// TickIntervalMS is the wall time of one game second.
	TickIntervalMS int `koanf:"tick_interval_ms"`

	// ShotClockSeconds is the initial shot clock duration.
	ShotClockSeconds int `koanf:"shot_clock_seconds"`

	// ShotClockStepSeconds is the +/- adjustment step.
	ShotClockStepSeconds int `koanf:"shot_clock_step_seconds"`

	// CORSAllowedOrigins lists browser origins allowed to call the API.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// ShuffleSeed makes the starting roster order deterministic when non-zero.
	ShuffleSeed uint64 `koanf:"shuffle_seed"`

	// PendingOutFirst orders players marked coming out ahead of the rest of the court.
	PendingOutFirst bool `koanf:"pending_out_first"`

	// ReplayWindow is how many recent Idempotency-Key values are remembered. Zero disables it.
	ReplayWindow int `koanf:"replay_window"`

	// MetricsNamespace and MetricsSubsystem prefix every Prometheus metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsBuckets overrides the latency histogram buckets (milliseconds).
	MetricsBuckets []float64 `koanf:"metrics_buckets"`

	// MetricsLabels are constant labels added to every metric, e.g. the team.
	MetricsLabels map[string]string `koanf:"metrics_labels"`

	// RosterPresets are the rosters offered on the start screen.
	RosterPresets []Preset `koanf:"roster_presets"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":9080",
		CommandQueueSize:     1024,
		TickIntervalMS:       1000,
		ShotClockSeconds:     0,
		ShotClockStepSeconds: 60,
		CORSAllowedOrigins:   []string{"*"},
		ReplayWindow:         256,
		MetricsNamespace:     "benchcoach",
		MetricsSubsystem:     "game",
		RosterPresets: []Preset{
			{
				Name: "5th Grade Boys",
				Players: []string{
					"Sawyer", "Kalim", "Brody", "Caleb", "Wesley", "John", "Jaxson",
					"Travis", "Killian", "Danny", "Adrian", "Chris", "Henry", "Noah",
				},
			},
			{
				Name: "3rd Grade Boys",
				Players: []string{
					"Keaton", "Logan", "Kamden", "Hudson", "August", "Bode", "Axel",
					"Tucker", "Noah", "Luke", "Odin", "Lennox", "Easton", "Michael",
				},
			},
		},
	}
}
