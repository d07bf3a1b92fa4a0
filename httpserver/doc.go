// Package httpserver projects the session state machine over HTTP. The
// handlers are a thin presentation layer: every endpoint maps to exactly
// one session.Manager operation and renders its snapshot or error, with no
// state-transition logic of its own.
package httpserver
