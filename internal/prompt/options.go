package prompt

// Defaults applied by DefaultOptions.
const (
	DefaultExpertise       = "20 years of experience"
	DefaultLevel           = "12 year old child"
	DefaultProgramLanguage = "Python==3.11"
	DefaultTemperature     = 0.8

	// CodeTemperature replaces the caller's temperature whenever Code is set.
	CodeTemperature = 0.2
)

// Options enumerates every modifier the composer recognizes.
// The zero value disables all modifiers and composes with the documented
// defaults.
type Options struct {
	// Role, when non-empty, prefixes the prompt with a persona framing clause.
	Role      string `yaml:"role"`
	Expertise string `yaml:"expertise"`

	// Learner asks for an explanation aimed at Level.
	Learner bool   `yaml:"learner"`
	Level   string `yaml:"level"`

	StepByStep         bool `yaml:"step_by_step"`
	ExplainLogic       bool `yaml:"explain_logic"`
	ExplainAssumptions bool `yaml:"explain_assumptions"`

	// Code adds a language directive and forces CodeTemperature.
	Code            bool   `yaml:"code"`
	ProgramLanguage string `yaml:"program_language"`

	// StepByStepCode turns the function/docstring/comments/doctest/imports
	// clauses into an ordered list of steps.
	StepByStepCode  bool `yaml:"step_by_step_code"`
	IncludeFunction bool `yaml:"include_function"`
	Docstring       bool `yaml:"docstring"`
	Comments        bool `yaml:"comments"`
	Doctest         bool `yaml:"doctest"`
	Imports         bool `yaml:"imports"`

	Exceptions  bool `yaml:"exceptions"`
	ElegantCode bool `yaml:"elegant_code"`

	// Snippet is appended verbatim between SnippetDelimiter markers.
	Snippet  string `yaml:"snippet"`
	JustCode bool   `yaml:"just_code"`

	// Temperature is the sampling temperature used unless Code overrides it.
	// Nil means DefaultTemperature.
	Temperature *float64 `yaml:"temperature"`
}

// DefaultOptions returns options with every modifier disabled and the
// documented defaults for expertise, level and language filled in.
// Temperature is left nil and resolves to DefaultTemperature.
func DefaultOptions() Options {
	return Options{
		Expertise:       DefaultExpertise,
		Level:           DefaultLevel,
		ProgramLanguage: DefaultProgramLanguage,
	}
}

// Float returns a pointer to v, for setting Options.Temperature.
func Float(v float64) *float64 {
	return &v
}

// withDefaults fills the empty string settings with their defaults.
func (o Options) withDefaults() Options {
	if o.Expertise == "" {
		o.Expertise = DefaultExpertise
	}
	if o.Level == "" {
		o.Level = DefaultLevel
	}
	if o.ProgramLanguage == "" {
		o.ProgramLanguage = DefaultProgramLanguage
	}
	return o
}
