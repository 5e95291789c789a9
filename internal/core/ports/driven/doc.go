// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DictionaryStore: Read-only stem and affix-rule lookup
//   - DictionaryLoader: Opens a dictionary file into a DictionaryStore
//   - DictionaryWriter: Encodes a DictionaryStore in one format
//   - DictionaryCodec: Loader plus per-format writers
//   - ConfigStore: Application configuration
//
// Alternate dictionary formats or languages plug in behind DictionaryLoader
// without touching the services.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
