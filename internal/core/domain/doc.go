// Package domain defines the core business entities for the Tarot42 client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Session state: mode, step and panel visibility enumerations
//   - Slot: One named position in a spread awaiting a card
//   - Reading: A generated reading and its follow-up context
//   - ChatMessage: One entry in the conversation history
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
