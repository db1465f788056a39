// Package discovery builds the model context consumed by the rendering
// engine from a Google API discovery document.
package discovery

import (
	"encoding/json"
	"fmt"
)

// Document is the raw discovery payload, limited to the fields the builder
// consumes.
type Document struct {
	Name        string                `json:"name"`
	Version     string                `json:"version"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Schemas     map[string]*Schema    `json:"schemas"`
	Resources   map[string]*Resource  `json:"resources"`
	Methods     map[string]*RawMethod `json:"methods"`
}

// Schema is a discovery JSON schema fragment: either an object with
// properties, an array with items, a primitive, or a reference.
type Schema struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	Format      string             `json:"format"`
	Description string             `json:"description"`
	Ref         string             `json:"$ref"`
	Properties  map[string]*Schema `json:"properties"`
	Items       *Schema            `json:"items"`
	// AdditionalProperties marks string-keyed map types.
	AdditionalProperties *Schema `json:"additionalProperties"`

	// Parameter-only fields.
	Required bool   `json:"required"`
	Location string `json:"location"`
}

// Resource groups methods and nested resources.
type Resource struct {
	Methods   map[string]*RawMethod `json:"methods"`
	Resources map[string]*Resource  `json:"resources"`
}

// RawMethod is one operation as described by the document.
type RawMethod struct {
	ID             string             `json:"id"`
	Path           string             `json:"path"`
	HTTPMethod     string             `json:"httpMethod"`
	Description    string             `json:"description"`
	Parameters     map[string]*Schema `json:"parameters"`
	ParameterOrder []string           `json:"parameterOrder"`
	Request        *Schema            `json:"request"`
	Response       *Schema            `json:"response"`
}

// ParseDocument decodes a discovery document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("discovery: parse document: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("discovery: document has no name")
	}
	return &doc, nil
}
