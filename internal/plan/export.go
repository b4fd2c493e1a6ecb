package plan

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"builder-generator/internal/emit"
	"builder-generator/internal/policy"
)

// ExportedBuilder is the YAML form of one planned builder.
type ExportedBuilder struct {
	Record  string           `yaml:"record"`
	Policy  *policy.Resolved `yaml:"policy"`
	Builder emit.BuilderSpec `yaml:"builder"`
}

// ExportedPlan is the YAML form of a plan.
type ExportedPlan struct {
	Package  string            `yaml:"package"`
	Builders []ExportedBuilder `yaml:"builders"`
}

// Export converts a plan to its serializable form.
func Export(plan *Plan) *ExportedPlan {
	out := &ExportedPlan{
		Package:  plan.PkgPath,
		Builders: make([]ExportedBuilder, 0, len(plan.Builders)),
	}

	for _, b := range plan.Builders {
		out.Builders = append(out.Builders, ExportedBuilder{
			Record:  b.Record.Name(),
			Policy:  b.Policy,
			Builder: b.Spec,
		})
	}

	return out
}

// ExportYAML writes the resolved policies and builder descriptions of a plan
// as YAML, for review of what the directives resolved to.
func ExportYAML(plan *Plan) ([]byte, error) {
	data, err := yaml.Marshal(Export(plan))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}

	return data, nil
}

// Report summarizes a plan for humans.
type Report struct {
	Builders []BuilderReport
}

// BuilderReport summarizes one planned builder.
type BuilderReport struct {
	Record   string
	Builder  string
	Pattern  string
	Setters  []string
	Skipped  []string
	Failing  []string
	Defaults []string
	Error    string
	Clone    bool
}

// GenerateReport creates a report from a plan.
func GenerateReport(plan *Plan) *Report {
	report := &Report{Builders: []BuilderReport{}}

	for _, b := range plan.Builders {
		br := BuilderReport{
			Record:  b.Record.Name(),
			Builder: b.Spec.Name,
			Pattern: b.Spec.Pattern.String(),
			Error:   b.Spec.ErrorType,
			Clone:   b.Spec.Clone,
		}

		for _, s := range b.Spec.Setters {
			br.Setters = append(br.Setters, s.Name)
		}

		for _, fp := range b.Policy.Fields {
			switch {
			case !fp.SetterEnabled:
				br.Skipped = append(br.Skipped, fp.Name)
			case fp.CanFailUninitialized():
				br.Failing = append(br.Failing, fp.Name)
			}

			if fp.Default != policy.DefaultNone {
				br.Defaults = append(br.Defaults, fmt.Sprintf("%s (%s)", fp.Name, fp.Default))
			}
		}

		report.Builders = append(report.Builders, br)
	}

	return report
}

// FormatReport formats a report as human-readable text.
func FormatReport(report *Report) string {
	var sb strings.Builder

	for _, b := range report.Builders {
		fmt.Fprintf(&sb, "\n=== %s -> %s (%s) ===\n", b.Record, b.Builder, b.Pattern)
		fmt.Fprintf(&sb, "Setters: %d, Skipped: %d, Error type: %s\n", len(b.Setters), len(b.Skipped), b.Error)

		if len(b.Setters) > 0 {
			fmt.Fprintf(&sb, "  setters: %s\n", strings.Join(b.Setters, ", "))
		}

		if len(b.Skipped) > 0 {
			fmt.Fprintf(&sb, "  without setter: %s\n", strings.Join(b.Skipped, ", "))
		}

		if len(b.Defaults) > 0 {
			fmt.Fprintf(&sb, "  defaults: %s\n", strings.Join(b.Defaults, ", "))
		}

		if len(b.Failing) > 0 {
			fmt.Fprintf(&sb, "\n⚠ Build fails unless set: %s\n", strings.Join(b.Failing, ", "))
		} else {
			sb.WriteString("\n✓ Build cannot fail on unset fields.\n")
		}
	}

	return sb.String()
}
