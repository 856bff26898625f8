package openai

import (
	// Packages
	toolset "github.com/mutablelogic/go-toolset"
	opt "github.com/mutablelogic/go-toolset/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// GENERATION OPTIONS

// WithTemperature sets the sampling temperature (0.0 to 2.0)
func WithTemperature(value float64) opt.Opt {
	if value < 0 || value > 2 {
		return opt.Error(toolset.ErrBadParameter.With("temperature must be between 0.0 and 2.0"))
	}
	return opt.SetFloat64(opt.TemperatureKey, value)
}

// WithMaxTokens sets the maximum number of tokens to generate (minimum 1)
func WithMaxTokens(value uint) opt.Opt {
	if value < 1 {
		return opt.Error(toolset.ErrBadParameter.With("max_tokens must be at least 1"))
	}
	return opt.SetUint(opt.MaxTokensKey, value)
}

///////////////////////////////////////////////////////////////////////////////
// TOOL CHOICE OPTIONS

// WithToolChoiceAuto lets the model decide whether to use tools
func WithToolChoiceAuto() opt.Opt {
	return opt.SetString(opt.ToolChoiceKey, toolChoiceAuto)
}

// WithToolChoiceNone prevents the model from using any tools
func WithToolChoiceNone() opt.Opt {
	return opt.SetString(opt.ToolChoiceKey, toolChoiceNone)
}

// WithToolChoiceRequired forces the model to call at least one tool
func WithToolChoiceRequired() opt.Opt {
	return opt.SetString(opt.ToolChoiceKey, toolChoiceRequired)
}
