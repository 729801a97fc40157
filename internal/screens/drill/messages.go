package drill

// advanceMsg fires when the feedback delay ends. gen ties it to the run
// and answer that scheduled it, so ticks from before a restart or pause
// are dropped.
type advanceMsg struct {
	gen int
}
