// Package server holds the HTTP server configuration.
//
// It is kept separate from the main config package so that features can
// depend on server settings without importing the full application
// configuration.
package server
