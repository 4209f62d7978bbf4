// Package services implements the core session logic behind the driving
// ports: mode/step coordination, the spread model, acquisition routing,
// the voice capture state machine and the conversation subsystem.
//
// Services hold all mutable session state. Adapters never mutate state
// directly; they call the driving-port methods and subscribe to events.
package services
