// Package orchestrator assembles the page view (landing copy, signup form
// descriptor, catalog, open modal, notices) and hands it to a renderer picked
// by name or content negotiation.
package orchestrator
