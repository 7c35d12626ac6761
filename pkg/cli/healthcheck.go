package cli

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/montagne-dev/lampe/pkg/config"
	"github.com/montagne-dev/lampe/pkg/console"
)

// minGitVersion is spec.md §6's floor, needed for `clone --revision`.
var minGitVersion = [3]int{2, 49, 0}

func newHealthcheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "healthcheck",
		Short:   "Print environment diagnostics and verify git version, provider, and LLM credentials",
		GroupID: "diagnostics",
		RunE:    runHealthcheck,
	}
}

func runHealthcheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	env := config.LoadEnv()
	var failures []string

	if err := checkGitVersion(ctx); err != nil {
		failures = append(failures, err.Error())
	} else {
		console.Success("git version satisfies the %d.%d.%d floor", minGitVersion[0], minGitVersion[1], minGitVersion[2])
	}

	if env.AnthropicAPIKey == "" && env.OpenAIAPIKey == "" {
		failures = append(failures, "no LLM vendor key set (ANTHROPIC_API_KEY or OPENAI_API_KEY)")
	} else {
		console.Success("LLM vendor key configured")
	}

	providerName, err := config.ResolveProvider("auto", env)
	if err != nil {
		failures = append(failures, err.Error())
	} else {
		console.Info("auto-detected provider: %s", providerName)
		if sink, err := buildProvider(ctx, string(providerName), env); err != nil {
			failures = append(failures, err.Error())
		} else if err := sink.Healthcheck(ctx); err != nil {
			failures = append(failures, fmt.Sprintf("provider healthcheck: %v", err))
		} else {
			console.Success("provider %s reachable", providerName)
		}
	}

	if len(failures) > 0 {
		for _, f := range failures {
			console.Error("%s", f)
		}
		return fmt.Errorf("healthcheck: %d check(s) failed", len(failures))
	}
	return nil
}

var gitVersionPattern = regexp.MustCompile(`git version (\d+)\.(\d+)\.(\d+)`)

func checkGitVersion(ctx context.Context) error {
	out, err := exec.CommandContext(ctx, "git", "--version").Output()
	if err != nil {
		return fmt.Errorf("git --version: %w", err)
	}
	m := gitVersionPattern.FindStringSubmatch(strings.TrimSpace(string(out)))
	if m == nil {
		return fmt.Errorf("could not parse git version from %q", out)
	}
	var got [3]int
	for i := 0; i < 3; i++ {
		got[i], _ = strconv.Atoi(m[i+1])
	}
	if compareVersion(got, minGitVersion) < 0 {
		return fmt.Errorf("git version %d.%d.%d is older than the required %d.%d.%d",
			got[0], got[1], got[2], minGitVersion[0], minGitVersion[1], minGitVersion[2])
	}
	return nil
}

func compareVersion(a, b [3]int) int {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] - b[i]
		}
	}
	return 0
}
