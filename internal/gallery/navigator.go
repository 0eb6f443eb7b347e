// Package gallery implements the media gallery's index synchronization: a
// single selected index driven both by explicit pagination jumps and by
// passive visibility signals from the scrolling viewport. An explicit jump
// triggers a scroll animation whose intermediate positions must not be
// misread as organic swipes, so visibility signals are ignored until the
// animation deadline has passed.
package gallery

import "time"

// DefaultAnimationDuration is the smooth-scroll duration assumed when none is
// given: visibility signals arriving within this window after a jump belong
// to the animation, not the user.
const DefaultAnimationDuration = 500 * time.Millisecond

// Navigator tracks the currently displayed media index. Not safe for
// concurrent use; callers drive it from a single event loop.
type Navigator struct {
	count         int
	selectedIndex int
	suppressUntil time.Time
	animation     time.Duration
}

// NewNavigator creates a navigator over count media entries with the default
// animation duration. A non-positive count yields a single-entry navigator.
func NewNavigator(count int) *Navigator {
	return NewNavigatorWithDuration(count, DefaultAnimationDuration)
}

// NewNavigatorWithDuration creates a navigator with an explicit scroll
// animation duration.
func NewNavigatorWithDuration(count int, animation time.Duration) *Navigator {
	if count < 1 {
		count = 1
	}
	return &Navigator{count: count, animation: animation}
}

// SelectedIndex returns the currently displayed index.
func (n *Navigator) SelectedIndex() int {
	return n.selectedIndex
}

// Count returns the number of media entries.
func (n *Navigator) Count() int {
	return n.count
}

// JumpTo handles an explicit pagination jump: the index is clamped and
// applied immediately, and visibility signals are suppressed until the scroll
// animation completes. Returns the index the view should scroll to.
func (n *Navigator) JumpTo(index int, now time.Time) int {
	if index < 0 {
		index = 0
	}
	if index >= n.count {
		index = n.count - 1
	}

	n.selectedIndex = index
	n.suppressUntil = now.Add(n.animation)
	return index
}

// ObserveVisible handles a passive visibility signal for the entry at index.
// Signals arriving before the suppression deadline are ignored; out-of-range
// indexes are ignored outright. Reports whether the signal was applied.
func (n *Navigator) ObserveVisible(index int, now time.Time) bool {
	if index < 0 || index >= n.count {
		return false
	}
	if now.Before(n.suppressUntil) {
		return false
	}

	n.selectedIndex = index
	return true
}

// Reset returns to the first entry and drops any pending suppression, for
// when the media list itself is replaced.
func (n *Navigator) Reset(count int) {
	if count < 1 {
		count = 1
	}
	n.count = count
	n.selectedIndex = 0
	n.suppressUntil = time.Time{}
}
