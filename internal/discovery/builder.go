package discovery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-clientgen/pkg/api"
	"github.com/goliatone/go-clientgen/pkg/language"
)

// Build assembles the read-only model context for one API in the target
// language: schemas become models with language-typed properties, resource
// methods become methods with classified parameters. The result validates
// before it is returned, so renders never see a broken context.
func Build(doc *Document, lang *language.Language) (*api.Api, error) {
	b := &builder{doc: doc, lang: lang}

	a := &api.Api{
		Name:        doc.Name,
		Version:     doc.Version,
		ClassName:   lang.ToSafeClassName(doc.Name, doc.Name),
		Description: api.SanitizeDescription(doc.Description),
		Module:      moduleFor(doc, lang),
	}

	for _, name := range sortedKeys(doc.Schemas) {
		model, err := b.buildModel(name, doc.Schemas[name])
		if err != nil {
			return nil, err
		}
		a.Models = append(a.Models, model)
	}

	methods, err := b.collectMethods(doc.Methods, doc.Resources)
	if err != nil {
		return nil, err
	}
	a.Methods = methods

	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}
	return a, nil
}

func moduleFor(doc *Document, lang *language.Language) *api.Module {
	path := "com/google/api/services/" + doc.Name
	if lang.Name == "go" {
		path = "google.golang.org/api/" + doc.Name + "/" + doc.Version
	}
	return &api.Module{
		Name: strings.ReplaceAll(path, "/", "."),
		Path: path,
	}
}

type builder struct {
	doc  *Document
	lang *language.Language
}

func (b *builder) buildModel(wireName string, schema *Schema) (*api.Model, error) {
	model := &api.Model{
		WireName:    wireName,
		ClassName:   b.lang.ToSafeClassName(wireName, b.doc.Name),
		Description: api.SanitizeDescription(schema.Description),
	}

	if schema.Type == "array" {
		if schema.Items == nil {
			return nil, fmt.Errorf("discovery: schema %q: array without items", wireName)
		}
		element, err := b.buildModel(wireName+"Item", schema.Items)
		if err != nil {
			return nil, err
		}
		model.ArrayOf = element
		return model, nil
	}

	for _, propName := range sortedKeys(schema.Properties) {
		prop := schema.Properties[propName]
		model.Properties = append(model.Properties, &api.Property{
			WireName:    propName,
			CodeName:    b.lang.ToMemberName(propName, b.doc.Name),
			CodeType:    b.codeType(prop),
			Description: api.SanitizeDescription(prop.Description),
		})
	}
	return model, nil
}

// codeType maps one schema fragment to a target type expression, chasing
// arrays and maps down to their element types.
func (b *builder) codeType(schema *Schema) string {
	switch {
	case schema == nil:
		return b.lang.DefaultType
	case schema.Ref != "":
		return b.lang.ToSafeClassName(schema.Ref, b.doc.Name)
	case schema.Type == "array":
		return b.lang.ArrayType(b.codeType(schema.Items))
	case schema.AdditionalProperties != nil:
		return b.lang.MapType(b.codeType(schema.AdditionalProperties))
	default:
		return b.lang.TypeFor(schema.Type, schema.Format)
	}
}

func (b *builder) collectMethods(top map[string]*RawMethod, resources map[string]*Resource) ([]*api.Method, error) {
	var methods []*api.Method

	appendFrom := func(raw map[string]*RawMethod) error {
		for _, name := range sortedKeys(raw) {
			method, err := b.buildMethod(raw[name])
			if err != nil {
				return err
			}
			methods = append(methods, method)
		}
		return nil
	}

	if err := appendFrom(top); err != nil {
		return nil, err
	}

	var walk func(map[string]*Resource) error
	walk = func(rs map[string]*Resource) error {
		for _, name := range sortedKeys(rs) {
			r := rs[name]
			if err := appendFrom(r.Methods); err != nil {
				return err
			}
			if err := walk(r.Resources); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(resources); err != nil {
		return nil, err
	}

	sort.Slice(methods, func(i, k int) bool { return methods[i].WireName < methods[k].WireName })
	return methods, nil
}

func (b *builder) buildMethod(raw *RawMethod) (*api.Method, error) {
	if raw.ID == "" {
		return nil, fmt.Errorf("discovery: method without id")
	}

	method := &api.Method{
		WireName:    raw.ID,
		CodeName:    methodCodeName(raw.ID, b.doc.Name),
		Path:        raw.Path,
		HTTPMethod:  raw.HTTPMethod,
		Description: api.SanitizeDescription(raw.Description),
	}

	if raw.Request != nil && raw.Request.Ref != "" {
		method.RequestType = b.refModel(raw.Request.Ref)
	}
	if raw.Response != nil && raw.Response.Ref != "" {
		method.ResponseType = b.refModel(raw.Response.Ref)
	}

	params := make(map[string]*api.Parameter, len(raw.Parameters))
	for wireName, schema := range raw.Parameters {
		params[wireName] = &api.Parameter{
			WireName:    wireName,
			CodeName:    b.lang.ToMemberName(wireName, b.doc.Name),
			CodeType:    b.codeType(schema),
			Description: api.SanitizeDescription(schema.Description),
			Required:    schema.Required,
			Location:    schema.Location,
		}
	}

	// Required parameters follow parameterOrder first, then any remaining
	// required ones in name order; everything else is optional.
	seen := make(map[string]struct{}, len(params))
	for _, wireName := range raw.ParameterOrder {
		p, ok := params[wireName]
		if !ok {
			return nil, fmt.Errorf("discovery: method %s: parameterOrder names unknown parameter %q", raw.ID, wireName)
		}
		method.RequiredParameters = append(method.RequiredParameters, p)
		seen[wireName] = struct{}{}
	}
	for _, wireName := range sortedKeys(params) {
		p := params[wireName]
		if _, done := seen[wireName]; done {
			continue
		}
		if p.Required {
			method.RequiredParameters = append(method.RequiredParameters, p)
		} else {
			method.OptionalParameters = append(method.OptionalParameters, p)
		}
	}

	for _, wireName := range sortedKeys(params) {
		p := params[wireName]
		switch p.Location {
		case "path":
			method.PathParameters = append(method.PathParameters, p)
		case "query":
			method.QueryParameters = append(method.QueryParameters, p)
		}
	}
	return method, nil
}

// refModel produces the lightweight model reference methods carry for their
// request/response types. The full model lives in Api.Models; the reference
// only needs the class name templates expand.
func (b *builder) refModel(ref string) *api.Model {
	model := &api.Model{
		WireName:  ref,
		ClassName: b.lang.ToSafeClassName(ref, b.doc.Name),
	}
	if schema, ok := b.doc.Schemas[ref]; ok {
		model.Description = api.SanitizeDescription(schema.Description)
	}
	return model
}

// methodCodeName turns a discovery method id like "calendar.events.list"
// into a member-style name like "eventsList".
func methodCodeName(id, apiName string) string {
	trimmed := strings.TrimPrefix(id, apiName+".")
	parts := strings.Split(trimmed, ".")
	name := parts[0]
	for _, part := range parts[1:] {
		name += language.ToClassName(part)
	}
	return name
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
