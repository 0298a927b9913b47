// Package sampling builds distributions and sampling algorithms on top of random.Rand.
//
// Every function returns a computation; nothing here reads randomness any other
// way, and inputs are never modified.
package sampling
