// Package mouse debounces pointer events for the interaction pipeline.
//
// The Debouncer keeps the last sample of each event kind (move, press,
// drag, click) and derives from them:
//
//   - click and press counts, which grow while events land on the same
//     spot with the same modifiers within the double-click delay
//   - the offset of each drag step
//   - whether a release ends a click or a drag
//
//	d := mouse.NewDebouncer(mouse.DefaultConfig())
//	d.Press(100, 100, binding.Left, 0)
//	if d.Release(100, 100, binding.Left, 50) == mouse.ReleaseClick {
//	    count := d.Click(100, 100, binding.Left, 50, 1)
//	    ...
//	}
//
// All times are milliseconds on the event clock. Debouncer is safe for
// concurrent use.
package mouse
