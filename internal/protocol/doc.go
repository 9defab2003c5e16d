// Package protocol owns the decode error taxonomy shared by the netlink codec.
//
// Ownership boundary:
// - nla: attribute TLV primitives and iteration
// - genl: generic netlink header and family envelope contract
// - layout: fixed-layout struct cursors
package protocol
