package config

// smpConfiguration is new relative to the teacher (which never ran
// more than one search goroutine): worker count for the SMP
// coordinator, and the move overhead the time controller subtracts.
// TimeControlMode is not read: the time controller derives its mode
// from the search limits.
type smpConfiguration struct {
	NumWorkers int

	// TimeControlMode is one of "infinite", "fixed", "suddendeath",
	// "fischer", "tournament".
	TimeControlMode string
	MoveOverheadMs  int
}

func init() {
	Settings.Smp.NumWorkers = 1
	Settings.Smp.TimeControlMode = "suddendeath"
	Settings.Smp.MoveOverheadMs = 50
}
