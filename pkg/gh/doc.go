// Package gh provides typed access to GitHub resources on top of the
// request engine in pkg/rest.
//
// The package has two halves. Resolver derives the (owner, repo) pair a
// command operates on, from a repository URI, explicit flags, or
// configured defaults. Service shapes parameters into API paths and
// JSON bodies and delegates execution, pagination, and error
// normalization entirely to rest.Client.
package gh
