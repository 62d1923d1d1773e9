// Package lib contains infrastructure helpers that have no domain logic of
// their own:
//
//   - log: the logging façade used by every package in this module.
package lib
