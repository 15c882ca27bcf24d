// Package config provides configuration loading for automath.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Programmatic overrides  │  ← Highest priority (Editor.SetMathOptions)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← AUTOMATH_*
//	├─────────────────────────────┤
//	│  2. Config file             │  ← automath.toml / automath.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Each layer is a plain map[string]any. Layers are combined with
// DeepMerge and the result is decoded into a typed Config.
//
// # File formats
//
// TOML files use a [math] table:
//
//	[math]
//	outputType = "span"
//	delay = "250ms"
//
//	[[math.delimiters]]
//	open = "\\["
//	close = "\\]"
//	display = true
//
// YAML files use the same keys under math:. Delimiters given in a file
// replace the default list.
//
// # Live reload
//
// Watcher observes a config file with fsnotify and reports every
// successfully reloaded Config.
package config
