package world

// classified files a stage error under one of the package sentinels while the
// stage's own sentinel stays matchable, so both errors.Is(err, ErrConfig) and
// errors.Is(err, pathgraph.ErrTooNarrow) hold
type classified struct {
	kind  error
	stage string
	cause error
}

func classify(kind error, stage string, cause error) error {
	return &classified{kind: kind, stage: stage, cause: cause}
}

func (e *classified) Error() string {
	return e.kind.Error() + ": " + e.stage + ": " + e.cause.Error()
}

func (e *classified) Unwrap() []error {
	return []error{e.kind, e.cause}
}
