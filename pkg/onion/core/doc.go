// Package core contains the composition engine: stage contracts, the Composer
// that accumulates layers, and the Composition that folds them around a
// terminus into a single Handler. It is generic over the input and output
// types and knows nothing about transports; package onion instantiates it on
// the canonical Input and Output types.
package core
