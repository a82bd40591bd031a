// Package batch runs one built chain over many inputs with a fixed number of
// workers. Each input gets its own invocation; results come back unordered
// and carry the sequence number of their input.
package batch
