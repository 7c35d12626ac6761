package gitinspect

// Inspector performs read-only git operations over one local clone. It
// is the sole gateway the rest of lampe uses to interrogate repository
// state; no other package shells out to git.
type Inspector struct {
	repoPath string
	runner   Runner
}

// New creates an Inspector rooted at repoPath using the default
// production Runner.
func New(repoPath string) *Inspector {
	return &Inspector{repoPath: repoPath, runner: DefaultRunner}
}

// NewWithRunner creates an Inspector with an injected Runner, for
// tests.
func NewWithRunner(repoPath string, runner Runner) *Inspector {
	return &Inspector{repoPath: repoPath, runner: runner}
}

// RepoPath returns the local clone path this Inspector was constructed
// with.
func (i *Inspector) RepoPath() string {
	return i.repoPath
}
