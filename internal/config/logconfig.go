package config

// logConfiguration drives internal/logging's backend setup, the way
// the teacher's log configuration does.
type logConfiguration struct {
	LogLevel       string
	LogPath        string
	SearchTrace    bool
	SearchTraceLog string
}

func init() {
	Settings.Log.LogLevel = "info"
	Settings.Log.LogPath = "./logs"
	Settings.Log.SearchTrace = false
	Settings.Log.SearchTraceLog = "searchtrace.log"
}
