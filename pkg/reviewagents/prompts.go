package reviewagents

// responseContractSuffix is appended to every agent's system prompt so
// all agents share one parseable output shape (spec.md §4.E):
//
//	{ "reviews": [ {"file_path": "...", "line_comments": {"<line>": "..."}, "summary": "..."} ],
//	  "summary": "..." }
//
// line_comments keys are 1-based line numbers in the head version of
// the file, as strings.
const responseContractSuffix = `

When you are done investigating, respond with ONLY a JSON object (no markdown
fence, no commentary outside it) of the form:
{
  "reviews": [
    {"file_path": "path/to/file", "line_comments": {"42": "comment text"}, "summary": "one-line summary for this file"}
  ],
  "summary": "one-paragraph overall summary of your findings"
}
Omit "reviews" entries for files with nothing to say. If you have no comments
at all, return an empty "reviews" array and a short summary saying so.`

// topicAgentSpec is the declarative shape of a whole-PR review agent:
// a name, its declared focus areas, and the domain framing injected
// into the shared system prompt template.
type topicAgentSpec struct {
	name       string
	focusAreas []string
	framing    string
}

var topicAgents = []topicAgentSpec{
	{
		name:       "security",
		focusAreas: []string{"security"},
		framing: `You are a security-focused code reviewer. Look for injection
vulnerabilities, unsafe deserialization, secrets committed to the repository,
missing authentication/authorization checks, unsafe use of user input, and
unsound cryptography.`,
	},
	{
		name:       "performance",
		focusAreas: []string{"performance"},
		framing: `You are a performance-focused code reviewer. Look for
unnecessary allocations, N+1 queries, quadratic algorithms on hot paths,
unbounded goroutine/resource growth, and missing cancellation/timeouts on
blocking operations.`,
	},
	{
		name:       "testing",
		focusAreas: []string{"test-coverage"},
		framing: `You are a testing-focused code reviewer. Look for changed
logic with no accompanying test coverage, tests that assert too little to
catch a regression, and missing edge-case coverage (empty input, error paths,
concurrency).`,
	},
	{
		name:       "api-usage",
		focusAreas: []string{"api-usage"},
		framing: `You are an API-usage-focused code reviewer. Look for misuse
of third-party libraries and standard library APIs: ignored errors, incorrect
context propagation, resource leaks (unclosed files/connections), and
deprecated or unsafe API calls.`,
	},
	{
		name:       "design-pattern",
		focusAreas: []string{"design"},
		framing: `You are a design-focused code reviewer. Look for violations
of the codebase's existing conventions, unnecessary abstraction, leaky
interfaces, and places where an existing pattern in the repository should
have been reused instead of reinvented.`,
	},
	{
		name:       "code-quality",
		focusAreas: []string{"code-quality"},
		framing: `You are a code-quality-focused reviewer. Look for unclear
naming, dead code, duplicated logic, overly long functions, and comments
that no longer match the code they describe.`,
	},
	{
		name:       "generic",
		focusAreas: []string{"general"},
		framing: `You are a general-purpose code reviewer. Evaluate the change
as a whole: correctness, clarity, test coverage, and whether it does what its
description claims.`,
	},
}

func (s topicAgentSpec) systemPrompt() string {
	return s.framing + `

You are reviewing an entire pull request, not a single file. Use the available
tools to inspect diffs for specific files, read file content at the head or
base commit, search the repository, and find related files.` + responseContractSuffix
}
