// Package scrollbind maps a scroll offset to interpolated visual properties
// and writes them to a set of target elements whenever the offset changes.
//
// A [Binder] compiles a declaration map once: for every selector, every
// matched element gets its own compiled properties. Numeric properties ramp
// linearly (optionally shaped by a [gween] easing curve) or sway out and back
// along a parabola. Transform components are merged into one composite
// transform value. The "class" property toggles a class token inside its
// range and the "lock" property pins an element to the viewport with a
// [Lock] state machine.
//
// # Quick start
//
//	opts := scrollbind.Options{
//		Over: 100,
//		Animations: scrollbind.Declarations{}.
//			Add(".header", "height", scrollbind.PropertySpec{
//				From: scrollbind.Ptr(80.0), To: scrollbind.Ptr(40.0),
//			}).
//			Add(".header", "class", scrollbind.PropertySpec{
//				Class: "compact", Delay: scrollbind.Px(40),
//			}),
//	}
//	b := scrollbind.New(root, doc, sched, opts)
//	defer b.Unbind()
//
// # Hosts
//
// The binder never touches a real document. It consumes an [Element] per
// target, a [Document] for selector queries and scroll notifications, and a
// [Scheduler] for frame callbacks and timers, all injected at construction.
// The headless package provides an in-memory document and a deterministic
// clock; the scene package hosts a binder inside an [Ebitengine] game.
//
// # Scheduling
//
// Scroll notifications are throttled to one apply per [ThrottleWindow]. Each
// notification re-arms a [SettleDelay] timer whose expiry applies once more
// at the final offset. In poll mode the offset is read every frame instead,
// and polling detaches after [IdleDelay] without change until the next
// scroll notification.
//
// [gween]: https://github.com/tanema/gween
// [Ebitengine]: https://ebitengine.org
package scrollbind
