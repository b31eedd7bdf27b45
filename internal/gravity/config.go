package gravity

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-swiftris/internal/config"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// Static builds the policy of the gravity section without loading any
// script: fixed mode gives Fixed, every other mode the stepped curve. The
// result holds no resources.
func Static(cfg config.GravityConfig) Policy {
	if cfg.Mode == config.GravityFixed {
		return Fixed(ms(cfg.InitialMs))
	}
	return Stepped{Initial: ms(cfg.InitialMs), Step: ms(cfg.StepMs), Floor: ms(cfg.FloorMs)}
}

// FromConfig builds the policy selected by the gravity section.
// A Lua script that cannot be loaded is reported and replaced by the
// stepped curve of the same section, so a typo never blocks a game.
func FromConfig(cfg config.GravityConfig, logger *log.Logger) Policy {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Mode != config.GravityLua {
		return Static(cfg)
	}

	stepped := Static(config.GravityConfig{
		Mode:      config.GravityStepped,
		InitialMs: cfg.InitialMs,
		StepMs:    cfg.StepMs,
		FloorMs:   cfg.FloorMs,
	})
	p, err := NewLuaPolicyFile(cfg.Script, stepped, logger)
	if err != nil {
		logger.Warn("gravity script unavailable, using stepped curve", "script", cfg.Script, "err", err)
		return stepped
	}
	return p
}
