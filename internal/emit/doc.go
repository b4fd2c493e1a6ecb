// Package emit turns resolved builder policies into abstract artifact
// descriptions: storage fields, setters, initializers, the build method and
// the error type of a builder.
//
// Every emitter is a pure function of its policies. Names in the specs are
// already Go-cased from the resolved visibilities, so a renderer only has to
// print them.
package emit
