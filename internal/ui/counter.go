package ui

import (
	"fyne.io/fyne/v2"
)

const counterKey = "clickCount"

// Counter is the home screen's tap counter, persisted across launches.
type Counter struct {
	prefs fyne.Preferences
}

func NewCounter(prefs fyne.Preferences) *Counter {
	return &Counter{prefs: prefs}
}

func (c *Counter) Value() int {
	return c.prefs.IntWithFallback(counterKey, 0)
}

// Increment adds one and returns the new value.
func (c *Counter) Increment() int {
	n := c.Value() + 1
	c.prefs.SetInt(counterKey, n)
	return n
}
