// Package theme resolves the theme of the day: it reads the stored theme for
// today's date and, when there is none, asks the language model for one and
// stores it under the date key.
package theme
