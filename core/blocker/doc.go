// Package blocker provides the per-channel message buffer of the in-process bus.
//
// A Blocker keeps two bounded histories of shared message handles:
//
//   - published: appended to by every Publish, oldest entries evicted beyond capacity
//   - observed: a snapshot of published taken by the last Observe call
//
// and a set of subscriber callbacks keyed by id.
//
// # Pull Consumption
//
// A consumer that runs on a cadence calls Observe once per cycle and then reads the
// snapshot. Publishes that happen in between do not change what it reads:
//
//	b := blocker.MustNew[Obstacle](blocker.NewAttr(10, "/perception/obstacles"))
//
//	b.Observe()
//	if !b.IsObservedEmpty() {
//		latest, _ := b.GetLatestObservedPtr()
//		plan(latest)
//	}
//
// # Push Consumption
//
// Callbacks run synchronously on the producer's goroutine, in registration order:
//
//	ok := b.Subscribe("planner", func(msg *Obstacle) {
//		planner.Update(msg)
//	})
//	if !ok {
//		// id already registered
//	}
//	defer b.Unsubscribe("planner")
//
// A panicking callback is recovered and logged; the other subscribers still receive
// the message. A callback must not publish to its own Blocker.
//
// # Shared Handles
//
// Messages are stored as *T. The Blocker never modifies a payload after it has been
// published, and producers and subscribers must not either. Dropping a handle from a
// history (eviction, Clear*, Reset) never affects handles held elsewhere.
//
// # Capacity
//
// Capacity must be positive; New and SetCapacity return ErrInvalidCapacity otherwise.
// Shrinking the capacity truncates both histories, oldest entries first, which is
// the same policy Publish applies on overflow.
//
// # Errors
//
//   - ErrEmptyBuffer: latest/oldest accessor called on an empty history
//   - ErrInvalidCapacity: non-positive capacity
//   - ErrDuplicateSubscription, ErrUnknownSubscription: reported by Subscribe and
//     Unsubscribe as false; provided for layers that return errors
package blocker
