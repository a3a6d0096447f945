// Package deps checks that the external executables romhash shells out to are
// installed and resolvable on PATH.
package deps
