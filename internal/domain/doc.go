// Package domain contains the core model for typesync.
//
// The domain does not touch the filesystem or spawn processes: it defines the
// configuration, the per-run report and the error taxonomy. Infra adapters map
// into these types.
package domain
