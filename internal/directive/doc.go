// Package directive provides the directive model of the builder generator:
// ordered directive trees attached to records and fields, the YAML and HCL
// document formats that carry them, and the typed options parsed from a tree.
//
// A directive tree is an ordered list of named nodes. Each node is either a
// bare word (a flag such as "public"), a literal value ("prefix: with") or a
// nested tree ("setter: {into, prefix: with}"). Order is preserved from the
// source document so that every diagnostic and every resolved policy is
// deterministic.
//
// # Document Overview
//
//	version: "1"
//	records:
//	  - name: Lorem
//	    builder:
//	      pattern: owned
//	      setter: {prefix: with, into}
//	      build_fn: {validate: validateLorem}
//	    fields:
//	      ipsum:
//	        default: 42
//	      dolor:
//	        setter: [skip]
//
// The same document in HCL:
//
//	record "Lorem" {
//	  pattern = "owned"
//	  setter {
//	    prefix = "with"
//	    into   = true
//	  }
//	  field "ipsum" {
//	    default = 42
//	  }
//	}
//
// # Typed Options
//
// ParseRecordOptions and ParseFieldOptions validate a tree against the
// directive grammar of their scope. Unknown names, duplicated names and
// values of the wrong kind are reported as diagnostics naming the record and
// field; resolution of precedence between scopes happens in package policy.
package directive
