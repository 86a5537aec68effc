// Package uuid generates and validates version 4 UUIDs for device
// identity.
//
// Generation is pseudo-random on purpose: the targeted hosts have no
// reliable entropy source, so the generator is seeded once from a
// caller-supplied unique hardware identifier (see Seed). The rendered
// form is the canonical lowercase 8-4-4-4-12 grouping; Validate checks
// that exact shape and nothing looser.
package uuid
