package gitinspect

import (
	"context"
	"fmt"
	"strings"
)

// fakeRunner is a scripted Runner for gitinspect tests: responses are
// matched by the joined argument string's prefix, so a test only needs
// to register the git subcommands it actually exercises.
type fakeRunner struct {
	responses map[string]fakeResponse
	calls     []string
}

type fakeResponse struct {
	stdout string
	stderr string
	err    error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: map[string]fakeResponse{}}
}

func (f *fakeRunner) on(argsPrefix string, stdout string) *fakeRunner {
	f.responses[argsPrefix] = fakeResponse{stdout: stdout}
	return f
}

func (f *fakeRunner) onErr(argsPrefix string, err error) *fakeRunner {
	f.responses[argsPrefix] = fakeResponse{err: err}
	return f
}

func (f *fakeRunner) Run(ctx context.Context, dir string, args ...string) (string, string, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	for prefix, resp := range f.responses {
		if strings.HasPrefix(key, prefix) {
			return resp.stdout, resp.stderr, resp.err
		}
	}
	return "", "", fmt.Errorf("fakeRunner: no response registered for %q", key)
}
