// Package builder holds the form-builder state machine: an explicit draft
// State plus a pure reducer over tagged Action variants. The editing surface
// owns the single State value and threads it through Apply; there is no
// process-wide draft singleton and no transition touches I/O.
package builder
