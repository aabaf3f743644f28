// Package cli is the interactive gitdrop command loop. It stands in for a
// chat host: commands arrive as lines, file paths stand in for replied-to
// attachments, and results are printed as plain text.
//
// Commands:
//   - ghset [token]   validate and store a GitHub token (prompts when omitted)
//   - ghupload <path> upload a file and print its raw link
//   - ghunset         forget the stored token
//   - whoami          print the login of the active token
//   - help, exit, quit
package cli
