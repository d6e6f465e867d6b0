// Package storage keeps meals and exercises in memory and mirrors them to
// comma-delimited text files.
//
// Each store loads its file when it is constructed and rewrites the whole file
// after Add. Delete only changes memory; callers persist with Write. Records
// are addressed by their 0-based position, so deleting a record shifts every
// later index down by one.
//
// Stores are meant for a single owner and do no locking of their own.
package storage
