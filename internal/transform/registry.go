package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ProjectionTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("delay_retirement", createDelayRetirement)
	registry.Register("set_retirement_age", createSetRetirementAge)
	registry.Register("set_target_age", createSetTargetAge)
	registry.Register("adjust_dividend", createAdjustDividend)
	registry.Register("set_expenses", createSetExpenses)
	registry.Register("raise_income", createRaiseIncome)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProjectionTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "delay_retirement:years=3"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProjectionTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseAll parses each spec in order
func (r *TransformRegistry) ParseAll(specs []string) ([]ProjectionTransform, error) {
	out := make([]ProjectionTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Factory functions for each transform

func intParam(transform, key string, params map[string]string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func decimalParam(transform, key string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createDelayRetirement(params map[string]string) (ProjectionTransform, error) {
	years, err := intParam("delay_retirement", "years", params)
	if err != nil {
		return nil, err
	}
	return &DelayRetirement{Years: years}, nil
}

func createSetRetirementAge(params map[string]string) (ProjectionTransform, error) {
	age, err := intParam("set_retirement_age", "age", params)
	if err != nil {
		return nil, err
	}
	return &SetRetirementAge{Age: age}, nil
}

func createSetTargetAge(params map[string]string) (ProjectionTransform, error) {
	age, err := intParam("set_target_age", "age", params)
	if err != nil {
		return nil, err
	}
	return &SetTargetAge{Age: age}, nil
}

func createAdjustDividend(params map[string]string) (ProjectionTransform, error) {
	rate, err := decimalParam("adjust_dividend", "rate", params)
	if err != nil {
		return nil, err
	}
	return &AdjustDividend{Rate: rate}, nil
}

func createSetExpenses(params map[string]string) (ProjectionTransform, error) {
	monthly, err := decimalParam("set_expenses", "monthly", params)
	if err != nil {
		return nil, err
	}
	return &SetExpenses{Monthly: monthly}, nil
}

func createRaiseIncome(params map[string]string) (ProjectionTransform, error) {
	percent, err := decimalParam("raise_income", "percent", params)
	if err != nil {
		return nil, err
	}
	return &RaiseIncome{Percent: percent}, nil
}
