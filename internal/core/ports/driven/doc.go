// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SessionStore: Live session state (in-memory)
//   - ConfigStore: Application configuration
//   - NormaliserRegistry, Chunker: Document splitting for 'annotator chunk'
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ExportArchive: Export history (SQLite). Without it, exports are not archived.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
