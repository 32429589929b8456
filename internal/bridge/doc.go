// Package bridge implements the authentication bridge between an Admidio
// membership database and a host application's identity store.
//
// The host application does not keep its own password store. Instead, every
// login is verified against the external membership database, and the
// matching host user is created on first successful login (JIT provisioning)
// with its group memberships derived from the external role assignments.
//
// # Authentication
//
// Authenticate runs a fixed state machine: an empty secret is rejected
// before any I/O; an unknown username burns one dummy hash comparison so its
// latency matches a wrong-password attempt; a verified credential still
// fails when the external profile lacks a usable email address, because host
// systems refuse identities without one. Every terminal state maps to one
// structured Response; credential failures share a generic message and are
// told apart only by ErrorKind and logs.
//
// # Authorization synchronization
//
// SyncAuthorization runs after a successful login. It re-reads the external
// profile and role assignments (never cached), ensures the host user exists,
// and replaces the user's host group memberships with the groups whose title
// exactly matches an external role name. Revoked roles therefore disappear
// on the host side at the next login. The operation is idempotent and safe
// to retry; a user created without its memberships is reported as a partial
// provisioning failure, never as success.
//
// Example usage:
//
//	client := extstore.NewClient(externalDB, "adm_")
//	store := hoststore.NewStore(hostDB)
//	b := bridge.New(client, bridge.NewVerifier(), bridge.NewProvisioner(store), "Admidio")
//
//	resp := b.Authenticate(bridge.Credentials{Username: "ada", Secret: secret})
//	if resp.Status == bridge.StatusSuccess {
//	    err = b.SyncAuthorization("ada")
//	}
package bridge
