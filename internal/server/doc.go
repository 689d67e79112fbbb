// Package server serves a directory of static files over plain HTTP.
//
// It exists to preview a converted notebook page: the directory containing
// the written page is served as-is, and every response is labelled
// "text/html; charset=utf-8" regardless of the file actually served.
//
// The server binds synchronously in [Server.Start], so port conflicts are
// reported before anything is served, and shuts down gracefully with a
// 5-second timeout when the start context is cancelled.
//
// Users of the notebookview library should not need to interact with this
// package directly. The server is started by [notebookview.Serve].
package server
