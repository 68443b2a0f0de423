// Package coro implements two suspendable computations as explicit state
// machines: Task, a deferred computation that runs to completion on a single
// resume, and Generator, a lazy sequence that produces one value per resume.
//
// Neither type has a scheduler. The caller is the only driver and every
// Resume runs synchronously on the calling goroutine. Each instance writes its
// creation and destruction cost, and for generators its resume cost, into an
// Accumulators value supplied at construction. Accumulators are not
// synchronized: batches run concurrently must each use their own.
//
// A panic raised by a body is not recovered. A suspended frame has nowhere
// meaningful to resume to after a failure, so the panic unwinds through
// Resume and terminates the process.
package coro
