// Package layers provides ready-made layers for onion pipelines.
//
// Input side:
// - Enrich, EnrichFunc, Try: merge new fields into the input before next
// - Validate, Guard: preconditions that may short-circuit the chain
//
// Output side:
// - Map: rewrite outputs carrying one tag, forward every other tag
// - Tee, Passthrough: observe without altering the inner output
// - Catch, Recover: turn inner failures or panics into outputs or errors
//
// Timeout races the rest of the chain against a deadline.
package layers
