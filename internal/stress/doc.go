// Package stress runs the counter and blocking workloads against a stdthread
// platform and reports whether mutual exclusion held.
//
// Each round builds its own Runtime, so rounds share no control blocks and
// may run in parallel.
package stress
