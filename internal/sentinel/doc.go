// Package sentinel provides a string-backed error type for declaring
// sentinel errors as constants.
//
// Errors created with errors.New live in package variables that any importer
// can reassign. Error values are plain strings, so they can be declared with
// const and still be matched through wrapped chains with errors.Is.
package sentinel
