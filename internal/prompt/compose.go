// Package prompt composes the final prompt text sent to a chat-completion model.
// A base prompt is decorated by an ordered pipeline of clause producers, each a
// pure function of Options. The pipeline order is part of the package
// contract (see ClauseOrder): later clauses read differently depending on what
// came before.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyPrompt = errors.New("prompt is required")
)

// SnippetDelimiter wraps snippet text in the composed prompt.
const SnippetDelimiter = "|||"

// Composed is the result of a single Compose call.
type Composed struct {
	// Text is the base prompt with every enabled clause applied.
	Text string

	// Temperature is the effective sampling temperature for this prompt.
	Temperature float64

	// Clauses lists the names of the clauses that fired, in pipeline order.
	Clauses []string
}

// clause produces one fragment of the composed prompt.
// render returns "" when the clause does not apply to the given options.
type clause struct {
	name string

	// prefix clauses are placed before the text accumulated so far.
	prefix bool

	render func(Options) string
}

// pipeline is the fixed order in which clauses are applied.
var pipeline = []clause{
	{name: "role", prefix: true, render: roleClause},
	{name: "learner", render: learnerClause},
	{name: "step_by_step", render: when(func(o Options) bool { return o.StepByStep }, "\nGive step by step instructions:")},
	{name: "explain_logic", render: when(func(o Options) bool { return o.ExplainLogic }, "\nExplain your logic:")},
	{name: "explain_assumptions", render: when(func(o Options) bool { return o.ExplainAssumptions }, "\nState and explain your assumptions:")},
	{name: "code", render: codeClause},
	{name: "step_by_step_code", render: when(func(o Options) bool { return o.StepByStepCode }, "\nPerform the following steps:\n\tFirst, write the code:")},
	{name: "include_function", render: codeStep(func(o Options) bool { return o.IncludeFunction },
		"\n\tThen convert it to a function:", "\nthe output should be a function:")},
	{name: "docstring", render: codeStep(func(o Options) bool { return o.Docstring },
		"\n\tThen add a docstring:", "\nEnsure to include a docstring:")},
	{name: "comments", render: codeStep(func(o Options) bool { return o.Comments },
		"\n\tThen add comments:", "\nEnsure to include comments:")},
	{name: "doctest", render: codeStep(func(o Options) bool { return o.Doctest },
		"\n\tThen add doctest:", "\nEnsure to include doctest:")},
	{name: "imports", render: codeStep(func(o Options) bool { return o.Imports },
		"\n\tFinally add any imports used:", "\nEnsure to add any imports used")},
	{name: "exceptions", render: when(func(o Options) bool { return o.Exceptions }, "\nBe sure to use try/except clauses appropriately")},
	{name: "elegant_code", render: when(func(o Options) bool { return o.ElegantCode }, elegantChecklist)},
	{name: "snippet", render: snippetClause},
	{name: "just_code", render: when(func(o Options) bool { return o.JustCode }, "\nGive the final output code:")},
}

// ClauseOrder returns the clause names in application order.
func ClauseOrder() []string {
	names := make([]string, len(pipeline))
	for i, c := range pipeline {
		names[i] = c.name
	}
	return names
}

// Describe returns the names of the clauses opts enables, in application order.
func Describe(opts Options) []string {
	opts = opts.withDefaults()

	var fired []string
	for _, c := range pipeline {
		if c.render(opts) != "" {
			fired = append(fired, c.name)
		}
	}
	return fired
}

// Compose applies every enabled clause to base and resolves the temperature.
// Empty Expertise, Level and ProgramLanguage fall back to their defaults, so
// the zero Options composes like DefaultOptions. Options are read, never
// modified.
func Compose(base string, opts Options) (Composed, error) {
	if strings.TrimSpace(base) == "" {
		return Composed{}, ErrEmptyPrompt
	}
	opts = opts.withDefaults()

	text := base
	var fired []string
	for _, c := range pipeline {
		frag := c.render(opts)
		if frag == "" {
			continue
		}
		fired = append(fired, c.name)
		if c.prefix {
			text = frag + text
		} else {
			text += frag
		}
	}

	temperature := DefaultTemperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	if opts.Code {
		temperature = CodeTemperature
	}

	return Composed{
		Text:        text,
		Temperature: temperature,
		Clauses:     fired,
	}, nil
}

func when(enabled func(Options) bool, fragment string) func(Options) string {
	return func(o Options) string {
		if !enabled(o) {
			return ""
		}
		return fragment
	}
}

// codeStep renders asStep under StepByStepCode and flat otherwise.
func codeStep(enabled func(Options) bool, asStep, flat string) func(Options) string {
	return func(o Options) string {
		if !enabled(o) {
			return ""
		}
		if o.StepByStepCode {
			return asStep
		}
		return flat
	}
}

func roleClause(o Options) string {
	if o.Role == "" {
		return ""
	}
	return fmt.Sprintf("Act like an %s with %s:", o.Role, o.Expertise)
}

func learnerClause(o Options) string {
	if !o.Learner {
		return ""
	}
	return fmt.Sprintf("\nExplain it as if to a %s:", o.Level)
}

func codeClause(o Options) string {
	if !o.Code {
		return ""
	}
	return fmt.Sprintf("\nUse the %s program language:", o.ProgramLanguage)
}

func snippetClause(o Options) string {
	if o.Snippet == "" {
		return ""
	}
	return SnippetDelimiter + o.Snippet + SnippetDelimiter
}

const elegantChecklist = `
Perform each of the next 10 steps below in order, evaluating and reworking the code:
    1. Code Readability: Look for clear and well-structured code that is easy to understand. The code should be properly indented, have meaningful variable and function names, and follow a consistent coding style.
    2. Modular and Reusable Design: Check if the code follows the principles of modularity and reusability. Well-designed code should be divided into logical modules and functions that can be reused in different contexts without causing side effects.
    3. Performance and Efficiency: Assess if the code is optimized for performance and resource usage. Evaluate algorithms, loops, and data structures to ensure they are efficiently implemented. Avoid unnecessary computations and minimize memory consumption.
    4. Error Handling and Exception Handling: Check if the code handles errors and exceptions effectively. Look for proper error messages, logging of exceptions, and appropriate handling of edge cases to prevent unexpected crashes or incorrect behavior.
    5. Code Maintainability: Evaluate if the code is maintainable in the long term. Look for the presence of inline comments, useful documentation, and version control usage. Consider if the code can be easily updated, extended, or refactored without introducing bugs.
    6. Testability and Test Coverage: Assess if the code has unit tests and if the tests cover a significant portion of the codebase. Good code should have a comprehensive set of tests to ensure reliability and facilitate future modifications.
    7. Security Considerations: Check if the code follows secure coding practices. Look for proper input validation, protection against common vulnerabilities like SQL injection or cross-site scripting, and handling of sensitive data.
    8. Integration and Interoperability: Evaluate if the code interacts seamlessly with external systems or libraries. Check if it adheres to relevant standards, APIs, and protocols.
    9. Documentation: Assess if the code is well-documented, including inline comments, docstrings, and external documentation files. Good documentation helps other developers understand the code and accelerates onboarding.
    10. Code Consistency: Look for consistent coding patterns and adherence to design principles. Consistency in code style, naming conventions, and architectural choices is crucial for maintainability and collaboration.
`
