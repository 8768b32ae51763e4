package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/fosdem/gltriangle/lib/api"
	"github.com/fosdem/gltriangle/lib/app"
	"github.com/fosdem/gltriangle/lib/config"
	"github.com/fosdem/gltriangle/lib/log"
	"github.com/fosdem/gltriangle/lib/renderloop"
	"github.com/fosdem/gltriangle/lib/sink/windowsink"
	"github.com/fosdem/gltriangle/lib/stats"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	cfgPath := flag.String("config", "", "YAML config file, applied on top of its variant")
	variant := flag.String("variant", config.Variant2D, "Built-in variant to run without a config file (2d or 3d)")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath, *variant)
	if err != nil {
		fatal(err)
	}
	log.Setup(cfg.Level())

	if err := run(cfg); err != nil {
		fatal(err)
	}
}

func loadConfig(path, variant string) (*config.Config, error) {
	if path != "" {
		return config.Parse(path)
	}
	cfg, err := config.Default(variant)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func run(cfg *config.Config) error {
	s := stats.New(cfg.Variant)
	var server *api.Api
	hooks := &app.Hooks{
		Stats: s,
		LoopStarted: func(l *renderloop.Loop) {
			server = api.ServeInBackground(cfg, l, s)
		},
	}

	err := app.Run(cfg, windowsink.NewPlatform(), hooks)

	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if shutdownErr := server.Shutdown(ctx); shutdownErr != nil {
			slog.Warn(fmt.Sprintf("could not stop web server: %s", shutdownErr), slog.String("module", "main"))
		}
	}
	return err
}

// fatal is the only place the process aborts. Shader and link errors print
// the driver's info log as is.
func fatal(err error) {
	slog.Error(err.Error(), slog.String("module", "main"))
	os.Exit(1)
}
