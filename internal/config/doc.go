// Package config loads dailynote settings from DAILYNOTE_* environment
// variables and an optional YAML file using viper, applies defaults and
// validates the result before any gateway is built.
package config
