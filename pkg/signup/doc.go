// Package signup implements the signup modal's form controller: the text
// fields, the ordered skill set, the pending skill input, the password
// visibility toggle and the single in-flight registration request.
//
// State transitions are pure functions on State; Controller serialises them
// behind a mutex and refuses every mutation while a submission is in flight.
// A Controller belongs to exactly one open modal. Closing the modal discards
// it, and opening a new modal means constructing a new Controller.
package signup
