package api

// The entities in this package form the read-only object graph one render
// binds against: an Api owns Methods and Models, Methods carry classified
// Parameters, Models carry ordered Properties. Everything is constructed once
// per generation run and never mutated by the engine.

// Api is the root of the model context for a single API description.
type Api struct {
	// Name is the canonical (wire) name of the API, e.g. "calendar".
	Name string
	// Version is the API version string, e.g. "v3".
	Version string
	// ClassName is the target-language class name for the service entry point.
	ClassName string
	// Description is the sanitized, user-facing description of the API.
	Description string
	Module      *Module
	Methods     []*Method
	Models      []*Model
}

// Module locates generated code within the target language's namespace
// scheme (Java package, Go module path, ...).
type Module struct {
	// Name is the delimiter-joined module name, e.g. "com.google.api.services.calendar".
	Name string
	// Path is the '/' delimited path variant of Name.
	Path string
}

// Model is a schema type from the API description: either an object with
// ordered Properties, or an array of an element Model. The two shapes are
// mutually exclusive.
type Model struct {
	ClassName   string
	WireName    string
	Description string
	ArrayOf     *Model
	Properties  []*Property
}

// Property is one field of an object Model.
type Property struct {
	// WireName is the over-the-wire key for this field.
	WireName string
	// CodeName is the target-language identifier for the same field.
	CodeName string
	// CodeType is the target-language type expression, e.g. "java.lang.String".
	CodeType    string
	Description string
}

// Method is one RPC/HTTP operation of the API.
type Method struct {
	CodeName    string
	WireName    string
	Path        string
	HTTPMethod  string
	Description string

	RequestType  *Model
	ResponseType *Model

	// A Parameter may appear in more than one classification, e.g. a required
	// path parameter is present in both RequiredParameters and PathParameters.
	RequiredParameters []*Parameter
	OptionalParameters []*Parameter
	PathParameters     []*Parameter
	QueryParameters    []*Parameter
}

// Parameter is one formal parameter of a Method.
type Parameter struct {
	CodeName    string
	WireName    string
	CodeType    string
	Description string
	Required    bool
	// Location is where the parameter travels: "path" or "query".
	Location string
}
