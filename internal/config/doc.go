// Package config loads the molnav settings file and watches it, together
// with the binding profile it names, for changes.
//
// Settings live in one TOML file. Every key is optional; missing keys keep
// the value from Default.
//
//	[input]
//	max_click_delay = "700ms"
//	wheel_factor = 1.15
//	allow_gestures = true
//
//	[hover]
//	delay = "500ms"
//
//	[navigation]
//	max_zoom_percent = 200000
//	speed = 5
//
//	[animation]
//	move_fps = 30
//	path_fps = 10
//
//	[bindings]
//	style = "toggle"
//	profile = "bindings.yaml"
//
//	[log]
//	level = "info"
//
// A relative bindings.profile is resolved against the directory of the
// settings file.
//
// # Live reload
//
// A Watcher follows both files with fsnotify. Bursts of writes are
// debounced into one reload; a reload that fails to parse or validate is
// logged and the previous settings stay in effect.
package config
