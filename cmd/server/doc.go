// Package main is the entry point for the explorer backend server.
//
// The server exposes a JSON REST API over the local filesystem: directory
// listings, entry metadata, directory creation, batch delete, rename, a
// per-session clipboard with background paste, named location bookmarks,
// removable-device enumeration, background filename search, and a small
// persisted configuration store.
//
// Configuration comes from environment variables (12-factor); the -port
// and -dev flags override the environment for local runs.
//
// Signals:
//   - SIGINT, SIGTERM: graceful shutdown
package main
