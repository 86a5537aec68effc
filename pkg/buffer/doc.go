// Package buffer implements bounded in-place text composition.
//
// All display fragments in the panel tree are produced into
// fixed-capacity buffers. A Writer tracks a write position, clamps
// every append at the capacity, and silently drops the overflow. This
// is deliberate: on the constrained hosts this model targets, running
// out of buffer must degrade output, never grow memory or raise an
// error. Callers that need complete output size their buffers
// generously; there is no truncation indicator.
package buffer
