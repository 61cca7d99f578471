// Package domain contains the core entities of dailynote: the theme of the day
// and the articles generated for it. Entities validate themselves and are
// independent of any specific storage or language model.
package domain
