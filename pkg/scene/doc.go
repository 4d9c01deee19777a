// Package scene reads declarative popover scenes.
//
// A scene describes a container tree, the trigger inside it, the content
// size and the popover configuration, plus an optional script of timed
// events. Scenes can be written in TOML, YAML or JSON; the three formats
// decode to the same [Scene]:
//
//	name = "menu"
//	trigger = "button"
//	container = "panel"
//
//	[content]
//	width = 160
//	height = 90
//
//	[popover]
//	placement = "top"
//	trigger = "click"
//
//	[root]
//	name = "body"
//	width = 800
//	height = 600
//
//	  [[root.children]]
//	  name = "panel"
//	  position = "relative"
//	  x = 40
//	  y = 40
//	  width = 400
//	  height = 300
//
// Node coordinates are viewport coordinates with every scroll offset at
// zero; [Scene.Build] applies the authored scroll offsets afterwards, the
// same way scrolling moves content on screen.
package scene
