// Package cli provides the interactive EmployEra command-line client.
//
// It wires configuration, the local state database, the API client, the
// Session Store, the Auth Gate and the route guard, then runs a REPL in
// which every view is opened through the guard.
//
// Key features:
//   - Register / Login / Logout, with the session kept across runs
//   - Boot-time revalidation of a saved session
//   - Role-specific dashboards and menus (job seeker, employer)
//   - Profile view and partial edits, password change
//   - Light / dark theme preference
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
