// Package views is the default pubstatic renderer: templ pages and one
// embedded stylesheet. Edit the *.templ files and run 'templ generate' to
// regenerate the *_templ.go files.
package views

import "github.com/eringen/pubstatic"

// Default returns the ViewFuncs used by the pubstatic binary.
func Default() pubstatic.ViewFuncs {
	return pubstatic.ViewFuncs{
		Home:     Home,
		Document: Document,
		TagIndex: TagIndex,
		TagPage:  TagPage,
		NotFound: NotFound,
		Assets:   Assets(),
	}
}
