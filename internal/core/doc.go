// Package core implements the thread and lock managers behind the public
// stdthread API: control-block bookkeeping, the spawn trampoline, and the
// mapping of platform failures onto the public error kinds.
package core
