// Package server wires the engine together: storage, module store,
// entitlement resolver, ad gate, dispatcher, composer, and the HTTP/WS
// surface. All collaborators are constructed here and injected explicitly.
package server
