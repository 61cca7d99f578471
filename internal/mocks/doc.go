// Package mocks holds the shared test doubles: a scripted completion gateway
// and a document store wrapper whose operations can be overridden to inject
// faults. Theme, article and command tests all use them instead of defining
// inline fakes.
//
//	completer := mocks.NewMockCompleter(`{"title":"X","content":"...","tags":[]}`)
//	docs := &mocks.MockDocumentStore{Inner: memory.NewDocumentStore(nil)}
package mocks
