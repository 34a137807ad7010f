// Package identity is the boundary to the hosted identity service of record.
// The application never stores accounts; it hands a Registration to a
// Registrar and classifies the answer as success, a business rejection
// (*DomainError) or a transport failure (any other error).
package identity
