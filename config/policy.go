package config

import (
	"github.com/devmarvs/csphead"
)

// Policy describes a Content-Security-Policy in configuration. Raw holds a
// complete field value; Directives lists directive/sources pairs in the
// order they should serialize. When both are present, Raw parses first and
// Directives are applied on top as overrides.
type Policy struct {
	ReportOnly bool              `yaml:"report_only"`
	Raw        string            `yaml:"raw"`
	Directives []PolicyDirective `yaml:"directives"`
}

// PolicyDirective is one configured directive.
type PolicyDirective struct {
	Name    string   `yaml:"directive"`
	Sources []string `yaml:"sources"`
}

// Header builds the configured policy header, validating every directive.
func (p Policy) Header() (*csphead.Header, error) {
	header := csphead.New()
	if p.ReportOnly {
		header = csphead.NewReportOnly()
	}

	if p.Raw != "" {
		parsed, err := parseRaw(header.FieldName(), p.Raw)
		if err != nil {
			return nil, err
		}
		header = parsed
	}

	for _, directive := range p.Directives {
		if err := header.SetDirective(directive.Name, directive.Sources...); err != nil {
			return nil, err
		}
	}
	return header, nil
}

func parseRaw(field, raw string) (*csphead.Header, error) {
	if field == csphead.HeaderNameReportOnly {
		return csphead.ParseReportOnly(field + ": " + raw)
	}
	return csphead.Parse(field + ": " + raw)
}
