// Package server assembles the explorer backend: the bolt-backed store,
// the domain managers, the background operation engine, and the Gin HTTP
// surface in front of them.
//
// Lifecycle:
//  1. Load configuration from environment
//  2. Initialize the structured logger
//  3. Open the persistent store and seed system locations
//  4. Wire managers and the operation engine
//  5. Register middleware and routes
//  6. Serve until a shutdown signal drains the listener
package server
