// Package config provides the configuration system for sbp.
//
// Settings are resolved in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment (SBP_*)     │
//	├─────────────────────────────┤
//	│  2. Config File             │  ← --config, .sbp/config.*, ~/.config/sbp/config.*
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Config files may be TOML or YAML; the format follows the file extension.
// Environment variables use the SBP_ prefix with dots replaced by
// underscores, so SBP_REGISTERS_CAPTURE_ON_CONFIRM=true sets
// registers.capture_on_confirm.
//
// # Live Reload
//
// A Watcher observes the loaded file and re-runs the Loader after edits
// settle, handing the new Config to a callback:
//
//	w := config.NewWatcher(loader)
//	go w.Run(ctx, func(cfg *config.Config, err error) {
//	    if err == nil {
//	        app.ApplyConfig(cfg)
//	    }
//	})
package config
