package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Yates-Labs/promptsmith/internal/llm"
	"github.com/Yates-Labs/promptsmith/internal/prompt"
	"github.com/spf13/pflag"
)

// DefaultPresetsPath is used when neither --presets-file nor
// PROMPTSMITH_PRESETS is set.
const DefaultPresetsPath = "presets.yaml"

// optionFlags holds the modifier flags shared by ask and compose.
type optionFlags struct {
	values      prompt.Options
	temperature float64
	snippetFile string
	preset      string
	presetsFile string
}

// modifierFlags maps each modifier flag to the Options field it sets.
// Only flags given on the command line override the preset.
var modifierFlags = []struct {
	name string
	set  func(dst, src *prompt.Options)
}{
	{"role", func(dst, src *prompt.Options) { dst.Role = src.Role }},
	{"expertise", func(dst, src *prompt.Options) { dst.Expertise = src.Expertise }},
	{"learner", func(dst, src *prompt.Options) { dst.Learner = src.Learner }},
	{"level", func(dst, src *prompt.Options) { dst.Level = src.Level }},
	{"step-by-step", func(dst, src *prompt.Options) { dst.StepByStep = src.StepByStep }},
	{"explain-logic", func(dst, src *prompt.Options) { dst.ExplainLogic = src.ExplainLogic }},
	{"explain-assumptions", func(dst, src *prompt.Options) { dst.ExplainAssumptions = src.ExplainAssumptions }},
	{"code", func(dst, src *prompt.Options) { dst.Code = src.Code }},
	{"language", func(dst, src *prompt.Options) { dst.ProgramLanguage = src.ProgramLanguage }},
	{"step-by-step-code", func(dst, src *prompt.Options) { dst.StepByStepCode = src.StepByStepCode }},
	{"function", func(dst, src *prompt.Options) { dst.IncludeFunction = src.IncludeFunction }},
	{"docstring", func(dst, src *prompt.Options) { dst.Docstring = src.Docstring }},
	{"comments", func(dst, src *prompt.Options) { dst.Comments = src.Comments }},
	{"doctest", func(dst, src *prompt.Options) { dst.Doctest = src.Doctest }},
	{"imports", func(dst, src *prompt.Options) { dst.Imports = src.Imports }},
	{"exceptions", func(dst, src *prompt.Options) { dst.Exceptions = src.Exceptions }},
	{"elegant", func(dst, src *prompt.Options) { dst.ElegantCode = src.ElegantCode }},
	{"snippet", func(dst, src *prompt.Options) { dst.Snippet = src.Snippet }},
	{"just-code", func(dst, src *prompt.Options) { dst.JustCode = src.JustCode }},
}

func (f *optionFlags) register(fs *pflag.FlagSet) {
	d := prompt.DefaultOptions()
	v := &f.values

	fs.StringVar(&v.Role, "role", d.Role, "Persona the model should act as, e.g. \"expert Go developer\"")
	fs.StringVar(&v.Expertise, "expertise", d.Expertise, "Experience attributed to the persona")
	fs.BoolVar(&v.Learner, "learner", d.Learner, "Explain the answer for a learner")
	fs.StringVar(&v.Level, "level", d.Level, "Audience level used with --learner")
	fs.BoolVar(&v.StepByStep, "step-by-step", d.StepByStep, "Ask for step by step instructions")
	fs.BoolVar(&v.ExplainLogic, "explain-logic", d.ExplainLogic, "Ask the model to explain its logic")
	fs.BoolVar(&v.ExplainAssumptions, "explain-assumptions", d.ExplainAssumptions, "Ask the model to state its assumptions")
	fs.BoolVar(&v.Code, "code", d.Code, "Request code (forces temperature 0.2)")
	fs.StringVar(&v.ProgramLanguage, "language", d.ProgramLanguage, "Programming language used with --code")
	fs.BoolVar(&v.StepByStepCode, "step-by-step-code", d.StepByStepCode, "Phrase code requirements as ordered steps")
	fs.BoolVar(&v.IncludeFunction, "function", d.IncludeFunction, "The output should be a function")
	fs.BoolVar(&v.Docstring, "docstring", d.Docstring, "Include a docstring")
	fs.BoolVar(&v.Comments, "comments", d.Comments, "Include comments")
	fs.BoolVar(&v.Doctest, "doctest", d.Doctest, "Include a doctest")
	fs.BoolVar(&v.Imports, "imports", d.Imports, "Import required packages")
	fs.BoolVar(&v.Exceptions, "exceptions", d.Exceptions, "Handle exceptions")
	fs.BoolVar(&v.ElegantCode, "elegant", d.ElegantCode, "Append the code review checklist")
	fs.StringVar(&v.Snippet, "snippet", d.Snippet, "Code snippet to include verbatim")
	fs.StringVar(&f.snippetFile, "snippet-file", "", "Read the code snippet from a file")
	fs.BoolVar(&v.JustCode, "just-code", d.JustCode, "Ask for the final code only")
	fs.Float64Var(&f.temperature, "temperature", prompt.DefaultTemperature, "Sampling temperature (ignored with --code)")

	fs.StringVar(&f.preset, "preset", "", "Start from a named preset")
	fs.StringVar(&f.presetsFile, "presets-file", "", "Path to the presets YAML file (default $PROMPTSMITH_PRESETS or presets.yaml)")
}

// options resolves the final modifiers: defaults, then the preset, then
// every flag set explicitly on the command line.
func (f *optionFlags) options(fs *pflag.FlagSet) (prompt.Options, error) {
	opts := prompt.DefaultOptions()

	if f.preset != "" {
		presets, err := prompt.LoadPresets(resolvePresetsPath(f.presetsFile))
		if err != nil {
			return prompt.Options{}, err
		}
		opts, err = presets.Get(f.preset)
		if err != nil {
			return prompt.Options{}, err
		}
	}

	for _, flag := range modifierFlags {
		if fs.Changed(flag.name) {
			flag.set(&opts, &f.values)
		}
	}

	if fs.Changed("temperature") {
		opts.Temperature = prompt.Float(f.temperature)
	}

	if fs.Changed("snippet-file") {
		data, err := os.ReadFile(f.snippetFile)
		if err != nil {
			return prompt.Options{}, fmt.Errorf("read snippet: %w", err)
		}
		opts.Snippet = string(data)
	}

	return opts, nil
}

// generationFlags holds the request parameter overrides for ask.
type generationFlags struct {
	model            string
	maxTokens        int
	topP             float64
	frequencyPenalty float64
	presencePenalty  float64
}

func (g *generationFlags) register(fs *pflag.FlagSet) {
	d := llm.DefaultGenerationParams()

	fs.StringVar(&g.model, "model", d.Model, "Model name (overrides the config file)")
	fs.IntVar(&g.maxTokens, "max-tokens", d.MaxTokens, "Maximum tokens to generate")
	fs.Float64Var(&g.topP, "top-p", d.TopP, "Nucleus sampling probability mass")
	fs.Float64Var(&g.frequencyPenalty, "frequency-penalty", d.FrequencyPenalty, "Frequency penalty")
	fs.Float64Var(&g.presencePenalty, "presence-penalty", d.PresencePenalty, "Presence penalty")
}

// apply overrides params with the flags set on the command line.
func (g *generationFlags) apply(fs *pflag.FlagSet, params llm.GenerationParams) llm.GenerationParams {
	if fs.Changed("model") {
		params.Model = g.model
	}
	if fs.Changed("max-tokens") {
		params.MaxTokens = g.maxTokens
	}
	if fs.Changed("top-p") {
		params.TopP = g.topP
	}
	if fs.Changed("frequency-penalty") {
		params.FrequencyPenalty = g.frequencyPenalty
	}
	if fs.Changed("presence-penalty") {
		params.PresencePenalty = g.presencePenalty
	}
	return params
}

func resolvePresetsPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("PROMPTSMITH_PRESETS"); env != "" {
		return env
	}
	return DefaultPresetsPath
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
