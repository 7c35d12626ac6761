package gitinspect

import "github.com/montagne-dev/lampe/pkg/model"

var (
	diffNotFound = model.ErrDiffNotFound
	fileNotFound = model.ErrGitFileNotFound
)
