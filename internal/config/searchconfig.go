package config

// searchConfiguration gates the pruning/reduction/ordering heuristics
// the main search and quiescence search implement, the way the
// teacher's searchConfiguration does. UseQuiescence, UsePVS, UseKiller,
// IIDMargin, UseTTMove, NmpBase, ProbCutMargin, LmrDepth and
// LmrMovesSearched are not read by the search, which uses the
// constants in internal/search/params.go for those.
type searchConfiguration struct {
	UseQuiescence bool
	UseQSStandpat bool
	UseSEE        bool

	UsePVS    bool
	UseKiller bool
	UseIID    bool
	IIDDepth  int
	IIDMargin int

	UseTT      bool
	TTSizeMb   int
	UseTTMove  bool
	UseTTValue bool
	UseQSTT    bool

	UseMDP      bool
	UseRFP      bool
	UseRazoring bool
	UseNullMove bool
	NmpDepth    int
	NmpBase     int
	UseProbCut  bool
	ProbCutMargin int

	UseCheckExt bool

	UseFP            bool
	UseLmp           bool
	UseLmr           bool
	LmrDepth         int
	LmrMovesSearched int
}

func init() {
	Settings.Search.UseQuiescence = true
	Settings.Search.UseQSStandpat = true
	Settings.Search.UseSEE = true

	Settings.Search.UsePVS = true
	Settings.Search.UseKiller = true
	Settings.Search.UseIID = true
	Settings.Search.IIDDepth = 6
	Settings.Search.IIDMargin = 2

	Settings.Search.UseTT = true
	Settings.Search.TTSizeMb = 128
	Settings.Search.UseTTMove = true
	Settings.Search.UseTTValue = true
	Settings.Search.UseQSTT = true

	Settings.Search.UseMDP = true
	Settings.Search.UseRFP = true
	Settings.Search.UseRazoring = true
	Settings.Search.UseNullMove = true
	Settings.Search.NmpDepth = 3
	Settings.Search.NmpBase = 3
	Settings.Search.UseProbCut = true
	Settings.Search.ProbCutMargin = 100

	Settings.Search.UseCheckExt = true

	Settings.Search.UseFP = true
	Settings.Search.UseLmp = true
	Settings.Search.UseLmr = true
	Settings.Search.LmrDepth = 3
	Settings.Search.LmrMovesSearched = 3
}
