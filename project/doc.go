// Package project holds the persistent side of logicsim: user settings,
// the project library and the scenes inside each project.
//
// Settings are stored as TOML and projects as YAML inside a Store directory
// (by default ~/.logicsim). A Scene compiles into a runnable sim.Circuit.
package project
