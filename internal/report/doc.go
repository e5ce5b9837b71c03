// Package report keeps a history of stress runs in a SQLite database.
//
// Several stress processes may share one database file. Writes are
// serialized across processes with an advisory file lock next to it.
package report
