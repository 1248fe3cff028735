package config

// evalConfiguration mirrors the teacher's evalConfiguration; the
// evaluator itself is an out-of-scope collaborator, and internal/eval
// reads neither field.
type evalConfiguration struct {
	UseEvalTT bool
	Tempo     int
}

func init() {
	Settings.Eval.UseEvalTT = false
	Settings.Eval.Tempo = 10
}
