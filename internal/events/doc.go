// Package events carries run progress from the theme resolver and the article
// generator to whoever is watching.
//
// Components emit events without knowing which handlers will process them.
// The primary components are:
// - ProgressEvent: one step of a run (theme resolved, article saved, duplicate, failure)
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
// - ConsoleHandler: prints the human-readable progress lines
package events
