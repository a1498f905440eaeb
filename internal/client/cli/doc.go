// Package cli provides the interactive transcribeThis command-line client.
//
// It wires configuration, the local token store, the API client, and an
// interactive REPL. Typical flow: reconcile the stored session on startup,
// then execute user commands against the backend.
//
// Key features:
//   - Login / Register / Logout, plus Google sign-in via a loopback callback
//   - Upload audio for transcription and browse the history
//   - Plans, subscription, and usage
//   - Account profile and password management
//   - An admin console (dashboard, users, plans, activity, settings) gated
//     by the caller's role
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
