// Package flows orchestrates the client's auth operations behind
// explicit dependency structs. The root client builds the Deps wiring
// once and delegates; flows never reach into the API layer or the
// session container directly, so each flow is testable with plain
// function stubs.
package flows
