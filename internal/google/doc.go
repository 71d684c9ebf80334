// Package google provides OAuth2 authentication and token management for Google APIs.
//
// This package handles file-based token storage with one token file per
// account, so a single server process can act on behalf of multiple Google
// accounts (for example a work and a personal calendar).
//
// The TokenProvider interface allows different token sources to be plugged in,
// enabling integration between conversational clients and Google API access.
package google
