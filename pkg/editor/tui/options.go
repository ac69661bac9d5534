package tui

import "log/slog"

// SettingsMode controls whether the style settings are prompted.
type SettingsMode string

const (
	// SettingsAsk asks whether to edit settings before prompting them.
	SettingsAsk SettingsMode = "ask"
	// SettingsAlways prompts every settings field.
	SettingsAlways SettingsMode = "always"
	// SettingsSkip never prompts settings.
	SettingsSkip SettingsMode = "skip"
)

// Option configures Run.
type Option func(*runner)

// WithPromptDriver overrides the prompt driver used by Run.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithSettings selects how the style settings are offered.
func WithSettings(mode SettingsMode) Option {
	return func(r *runner) {
		switch mode {
		case SettingsAsk, SettingsAlways, SettingsSkip:
			r.settings = mode
		}
	}
}

// WithLogger sets the logger used for prompt diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}
