// Package config provides layered configuration for etudes.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Overrides (CLI flags)   │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment (ETUDES_*)  │
//	├─────────────────────────────┤
//	│  2. Config file (TOML)      │  ← ~/.config/etudes/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Usage
//
//	cfg := config.New(config.WithFile("etudes.toml"))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	opts, err := cfg.BufferOptions("notes.txt")
//
// Sizes such as buffer.capacity accept either a plain byte count or a
// humanized string ("64KiB", "1 MB").
package config
