// Package debug traces the decisions of the minifiers in builds made with
// -tags debug.
package debug
