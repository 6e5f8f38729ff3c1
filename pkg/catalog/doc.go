// Package catalog loads the static company → field descriptor mapping. The
// catalog is read once at startup and shared by reference; it has no
// mutation path after construction.
package catalog
