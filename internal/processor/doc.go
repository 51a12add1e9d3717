// Package processor contains the core application logic of leveltext.
// It loads the vocabulary, wires the AI adapter with its retry and
// circuit breaker decorators, selects a translation cache and runs the
// leveling or labeling engine over the requested documents. This package
// serves as the main coordinator between all other components.
package processor
