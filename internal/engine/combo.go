package engine

// ComboTracker counts consecutive correct answers and remembers the best run
type ComboTracker struct {
	count int
	max   int
}

// Count returns the current combo
func (c *ComboTracker) Count() int {
	return c.count
}

// Max returns the highest combo reached, never decreasing
func (c *ComboTracker) Max() int {
	return c.max
}

// Increment records a correct answer and returns the new combo
func (c *ComboTracker) Increment() int {
	c.count++
	if c.count > c.max {
		c.max = c.count
	}
	return c.count
}

// Reset clears the combo after a miss and returns what it was
func (c *ComboTracker) Reset() int {
	prev := c.count
	c.count = 0
	return prev
}
