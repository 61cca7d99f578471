// Package store defines the document persistence boundary. The
// DocumentStore interface abstracts the underlying database from the theme
// and article logic, which only ever see collections of keyed JSON documents.
package store
