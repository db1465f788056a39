package api

import "fmt"

// Validate checks the invariants the engine relies on. It is meant to run
// once, right after the context is built, so renders never have to re-check.
func (a *Api) Validate() error {
	if a.ClassName == "" {
		return fmt.Errorf("api: className is required")
	}
	for _, m := range a.Models {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("api %s: %w", a.Name, err)
		}
	}
	for _, m := range a.Methods {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("api %s: %w", a.Name, err)
		}
	}
	return nil
}

// Validate checks Model invariants: a non-empty className, and the mutual
// exclusion of arrayOf and properties.
func (m *Model) Validate() error {
	if m.ClassName == "" {
		return fmt.Errorf("api: model %q: className is required", m.WireName)
	}
	if m.ArrayOf != nil && len(m.Properties) > 0 {
		return fmt.Errorf("api: model %q: arrayOf and properties are mutually exclusive", m.WireName)
	}
	for _, p := range m.Properties {
		if p.WireName == "" || p.CodeName == "" {
			return fmt.Errorf("api: model %q: property needs both wireName and codeName", m.WireName)
		}
		if p.CodeType == "" {
			return fmt.Errorf("api: model %q: property %q: codeType is required", m.WireName, p.WireName)
		}
	}
	if m.ArrayOf != nil {
		return m.ArrayOf.Validate()
	}
	return nil
}

// Validate checks Method invariants, including every parameter it references
// across all classifications.
func (m *Method) Validate() error {
	if m.CodeName == "" {
		return fmt.Errorf("api: method %q: codeName is required", m.WireName)
	}
	for _, group := range [][]*Parameter{
		m.RequiredParameters, m.OptionalParameters, m.PathParameters, m.QueryParameters,
	} {
		for _, p := range group {
			if p.WireName == "" || p.CodeName == "" {
				return fmt.Errorf("api: method %q: parameter needs both wireName and codeName", m.WireName)
			}
		}
	}
	return nil
}
