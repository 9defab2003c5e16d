// Package taskstats implements the TASKSTATS generic netlink family.
//
// Two envelopes share the family on the wire:
// - Request: user->kernel commands carrying CommandAttr values
// - Event: kernel->user replies and exit notifications carrying EventAttr values
//
// Each has its own command enum and attribute set. They are never decoded
// through one another.
package taskstats
