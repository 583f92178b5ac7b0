// Package future provides a minimal generic Future type for representing
// the eventual result of an asynchronous computation.
//
// A Future is created either by running a function in a goroutine with Go,
// or pre-completed with Resolved. Consumers block on Await or poll with
// IsComplete. The package has no scheduler of its own; it is a thin
// channel-based rendezvous between exactly one producer and any number of
// waiters.
//
// # Usage
//
//	f := future.Go(ctx, userID, loadUser)
//	user, err := f.Await()
//
// Pre-completed futures let asynchronous-looking APIs resolve synchronously
// when no real suspension is needed:
//
//	return future.Resolved(result, nil)
//
// # Error Handling
//
// A future started with Go against an already-canceled context completes
// immediately with the context error without invoking the function.
package future
