// Package persistence provides panel identity persistence.
//
// Device UUIDs are assigned at attach time, so a tree rebuilt on
// restart would otherwise come up with fresh identities. StateStore
// saves the UUID assignments as JSON; Snapshot and Restore move them
// between a live tree and the store.
package persistence
