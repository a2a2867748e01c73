// Package cli is the toolkit's operator surface: the cobra command tree and
// the numbered Main / User / Admin menus behind the interactive command.
//
// Menus are plain sequential loops reading from a bufio.Reader. Every action
// that changes state or reveals secrets is written to the activity log with
// the username, "Admin" or "System" as actor. Errors from an action are shown
// to the operator and the loop carries on; only a failure to set up the store,
// the key file or the logs ends the process.
package cli
