// Package notify carries user-facing notices (title, description, severity)
// from the signup flow to whatever surface presents them: a toast in the web
// modal, a flash cookie across a redirect, or a line in the terminal.
package notify
