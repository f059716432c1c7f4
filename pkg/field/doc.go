// Package field defines the shared vocabulary for form definitions: the
// tagged Field variant and its per-type constraint payloads. Everything else
// in the module (validators, the builder state machine, renderers, storage)
// consumes these types and adds no state of its own to them.
package field
