// Package cli provides the interactive user-management front end.
//
// It wires configuration, the remote user service client, the collection
// store, the detail loader and both form controllers behind a REPL. The
// views follow the observer contract of the store and the loader: the App
// subscribes once and re-renders the current view from a fresh snapshot on
// every notification.
//
// Views:
//   - "/"          the user list, optionally filtered by a name search
//   - "/user/{id}" the detail of a single user
//
// Surfaces opened from the list:
//   - create: prompts for a new user; the username is derived from the name
//   - edit:   prompts for changes to a listed user; id and username are read-only
//
// The REPL is started via App.Run(ctx), which loads the list and blocks until
// the user exits. See runREPL for the command set.
package cli
