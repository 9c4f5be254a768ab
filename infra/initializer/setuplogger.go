package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/fxledger/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	infoTxtColor  = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnTxtColor  = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errorTxtColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
	debugTxtColor = lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}
)

// SetupLogger installs a charmbracelet/log handler, styled per level, as the
// default slog logger and returns it.
func SetupLogger(cfg *config.Log) *slog.Logger {
	logger := newLogger(os.Stdout, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text"}
	}

	formattersMap := map[string]log.Formatter{
		"json":   log.JSONFormatter,
		"text":   log.TextFormatter,
		"logfmt": log.LogfmtFormatter,
	}
	formatter := log.TextFormatter
	if f, ok := formattersMap[cfg.Format]; ok {
		formatter = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(ledgerStyles())

	return slog.New(logger)
}

func ledgerStyles() *log.Styles {
	styles := log.DefaultStyles()

	levels := []struct {
		level log.Level
		icon  string
		color lipgloss.AdaptiveColor
	}{
		{log.ErrorLevel, "❌", errorTxtColor},
		{log.WarnLevel, "⚠️", warnTxtColor},
		{log.InfoLevel, "ℹ️", infoTxtColor},
		{log.DebugLevel, "🐛", debugTxtColor},
	}
	for _, l := range levels {
		styles.Levels[l.level] = lipgloss.NewStyle().
			SetString(l.icon).
			Bold(true).
			Padding(0, 1).
			Foreground(l.color)
	}

	keys := map[string]lipgloss.AdaptiveColor{
		"error":          errorTxtColor,
		"warn":           warnTxtColor,
		"info":           infoTxtColor,
		"debug":          debugTxtColor,
		"transaction_id": infoTxtColor,
		"pair":           errorTxtColor,
		"component":      debugTxtColor,
	}
	for key, color := range keys {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(color)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	return styles
}
