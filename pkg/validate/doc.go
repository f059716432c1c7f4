// Package validate implements both halves of the form validation engine:
// definition validation (is the form schema itself saveable) and value
// validation (does a submitted answer satisfy a field's constraints), plus
// the batch submission pass that combines value checks across a whole form.
//
// Every function here is a pure computation over in-memory values. Nothing
// performs I/O and nothing retains state between calls; the only ambient
// input, the clock used by date rules, is injectable through Validator.Now.
package validate
