package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ProjectionTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common retirement what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "work_1yr",
		Description: "Work one more year before retiring",
		Transforms:  []ProjectionTransform{&DelayRetirement{Years: 1}},
	})
	registry.Register(Template{
		Name:        "work_3yr",
		Description: "Work three more years before retiring",
		Transforms:  []ProjectionTransform{&DelayRetirement{Years: 3}},
	})
	registry.Register(Template{
		Name:        "retire_55",
		Description: "Retire at 55, the first full withdrawal age",
		Transforms:  []ProjectionTransform{&SetRetirementAge{Age: 55}},
	})
	registry.Register(Template{
		Name:        "low_dividend",
		Description: "Dividend falls to 4% a year",
		Transforms:  []ProjectionTransform{&AdjustDividend{Rate: decimal.NewFromInt(4)}},
	})
	registry.Register(Template{
		Name:        "high_dividend",
		Description: "Dividend rises to 6.5% a year",
		Transforms:  []ProjectionTransform{&AdjustDividend{Rate: decimal.RequireFromString("6.5")}},
	})
	registry.Register(Template{
		Name:        "live_to_100",
		Description: "Plan for the fund to last to age 100",
		Transforms:  []ProjectionTransform{&SetTargetAge{Age: 100}},
	})
	registry.Register(Template{
		Name:        "raise_10pct",
		Description: "Monthly income 10% higher",
		Transforms:  []ProjectionTransform{&RaiseIncome{Percent: decimal.NewFromInt(10)}},
	})

	registry.Register(Template{
		Name:        "conservative",
		Description: "Conservative: work 2 more years, 4% dividend, plan to 95",
		Transforms: []ProjectionTransform{
			&DelayRetirement{Years: 2},
			&AdjustDividend{Rate: decimal.NewFromInt(4)},
			&SetTargetAge{Age: 95},
		},
	})
	registry.Register(Template{
		Name:        "optimistic",
		Description: "Optimistic: 10% raise and 6.5% dividend",
		Transforms: []ProjectionTransform{
			&RaiseIncome{Percent: decimal.NewFromInt(10)},
			&AdjustDividend{Rate: decimal.RequireFromString("6.5")},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base input
func ApplyTemplate(base domain.EPFProjectionInput, template Template) (domain.EPFProjectionInput, error) {
	return ApplyTransforms(base, template.Transforms)
}

// Resolve turns a template name or a "name:params" transform spec into transforms
func Resolve(templates *TemplateRegistry, registry *TransformRegistry, ref string) (string, []ProjectionTransform, error) {
	ref = strings.TrimSpace(ref)
	if t, ok := templates.Get(ref); ok {
		return t.Name, t.Transforms, nil
	}
	tr, err := registry.ParseTransformSpec(ref)
	if err != nil {
		return "", nil, fmt.Errorf("%q is neither a template nor a transform: %w", ref, err)
	}
	return ref, []ProjectionTransform{tr}, nil
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	for _, template := range registry.templates {
		var category string
		switch {
		case strings.HasPrefix(template.Name, "work_"), strings.HasPrefix(template.Name, "retire_"):
			category = "Retirement Timing"
		case strings.HasSuffix(template.Name, "_dividend"):
			category = "Dividend"
		case len(template.Transforms) > 1:
			category = "Combination Strategies"
		default:
			category = "Other"
		}
		categories[category] = append(categories[category], template)
	}

	for _, category := range []string{"Retirement Timing", "Dividend", "Other", "Combination Strategies"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}
		sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  rmgo compare profile.yaml --with work_1yr,low_dividend\n")
	sb.WriteString("  rmgo compare profile.yaml --with delay_retirement:years=5\n")

	return sb.String()
}
