package api

// Resolver exposes an entity's template-visible attributes by name. Dotted
// paths in templates walk chains of Resolvers; a missing name reports
// (nil, false) and the evaluator turns that into an attribute error. Keeping
// this as an explicit capability avoids reflection in the hot path.
type Resolver interface {
	Resolve(name string) (any, bool)
}

// Resolve implements Resolver for Api.
func (a *Api) Resolve(name string) (any, bool) {
	switch name {
	case "name":
		return a.Name, true
	case "version":
		return a.Version, true
	case "className":
		return a.ClassName, true
	case "description":
		return a.Description, true
	case "module":
		if a.Module == nil {
			return nil, true
		}
		return a.Module, true
	case "methods":
		return asSequence(a.Methods), true
	case "models":
		return asSequence(a.Models), true
	}
	return nil, false
}

// Resolve implements Resolver for Module.
func (m *Module) Resolve(name string) (any, bool) {
	switch name {
	case "name":
		return m.Name, true
	case "path":
		return m.Path, true
	}
	return nil, false
}

// Resolve implements Resolver for Model.
func (m *Model) Resolve(name string) (any, bool) {
	switch name {
	case "className":
		return m.ClassName, true
	case "wireName":
		return m.WireName, true
	case "description":
		return m.Description, true
	case "arrayOf":
		if m.ArrayOf == nil {
			return nil, true
		}
		return m.ArrayOf, true
	case "properties":
		return asSequence(m.Properties), true
	}
	return nil, false
}

// Resolve implements Resolver for Property.
func (p *Property) Resolve(name string) (any, bool) {
	switch name {
	case "wireName":
		return p.WireName, true
	case "codeName":
		return p.CodeName, true
	case "codeType":
		return p.CodeType, true
	case "description":
		return p.Description, true
	}
	return nil, false
}

// Resolve implements Resolver for Method.
func (m *Method) Resolve(name string) (any, bool) {
	switch name {
	case "codeName":
		return m.CodeName, true
	case "wireName":
		return m.WireName, true
	case "path":
		return m.Path, true
	case "httpMethod":
		return m.HTTPMethod, true
	case "description":
		return m.Description, true
	case "requestType":
		if m.RequestType == nil {
			return nil, true
		}
		return m.RequestType, true
	case "responseType":
		if m.ResponseType == nil {
			return nil, true
		}
		return m.ResponseType, true
	case "requiredParameters":
		return asSequence(m.RequiredParameters), true
	case "optionalParameters":
		return asSequence(m.OptionalParameters), true
	case "pathParameters":
		return asSequence(m.PathParameters), true
	case "queryParameters":
		return asSequence(m.QueryParameters), true
	}
	return nil, false
}

// Resolve implements Resolver for Parameter.
func (p *Parameter) Resolve(name string) (any, bool) {
	switch name {
	case "codeName":
		return p.CodeName, true
	case "wireName":
		return p.WireName, true
	case "codeType":
		return p.CodeType, true
	case "description":
		return p.Description, true
	case "required":
		return p.Required, true
	case "location":
		return p.Location, true
	}
	return nil, false
}

// asSequence converts a typed entity slice into the []any shape the evaluator
// iterates over, so loops stay reflection-free.
func asSequence[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
