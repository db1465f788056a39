package discovery

import (
	"testing"

	"github.com/goliatone/go-clientgen/pkg/api"
	"github.com/goliatone/go-clientgen/pkg/language"
)

// apiContext wraps a built Api with lookup helpers so tests fail with a
// message instead of a nil dereference.
type apiContext struct {
	t   *testing.T
	api *api.Api
}

func (c *apiContext) model(className string) *api.Model {
	c.t.Helper()
	for _, m := range c.api.Models {
		if m.ClassName == className {
			return m
		}
	}
	c.t.Fatalf("model %q not found", className)
	return nil
}

func (c *apiContext) method(wireName string) *api.Method {
	c.t.Helper()
	for _, m := range c.api.Methods {
		if m.WireName == wireName {
			return m
		}
	}
	c.t.Fatalf("method %q not found", wireName)
	return nil
}

const sampleDoc = `{
  "name": "calendar",
  "version": "v3",
  "description": "Lets you manipulate <b>events</b>.",
  "schemas": {
    "Event": {
      "id": "Event",
      "type": "object",
      "description": "A calendar event.",
      "properties": {
        "id": {"type": "string", "description": "Opaque identifier."},
        "maxAttendees": {"type": "integer", "format": "int32"},
        "start": {"$ref": "EventDateTime"},
        "attachments": {"type": "array", "items": {"$ref": "Attachment"}},
        "extras": {"type": "object", "additionalProperties": {"type": "string"}}
      }
    },
    "EventDateTime": {
      "id": "EventDateTime",
      "type": "object",
      "properties": {
        "dateTime": {"type": "string", "format": "date-time"}
      }
    },
    "Attachment": {
      "id": "Attachment",
      "type": "object",
      "properties": {
        "fileUrl": {"type": "string"}
      }
    },
    "EventList": {
      "id": "EventList",
      "type": "array",
      "items": {"$ref": "Event"}
    }
  },
  "resources": {
    "events": {
      "methods": {
        "list": {
          "id": "calendar.events.list",
          "path": "calendars/{calendarId}/events",
          "httpMethod": "GET",
          "description": "Returns events on the specified calendar.",
          "parameterOrder": ["calendarId"],
          "parameters": {
            "calendarId": {"type": "string", "required": true, "location": "path"},
            "maxResults": {"type": "integer", "format": "int32", "location": "query"},
            "pageToken": {"type": "string", "location": "query"}
          },
          "response": {"$ref": "EventList"}
        },
        "insert": {
          "id": "calendar.events.insert",
          "path": "calendars/{calendarId}/events",
          "httpMethod": "POST",
          "parameterOrder": ["calendarId"],
          "parameters": {
            "calendarId": {"type": "string", "required": true, "location": "path"}
          },
          "request": {"$ref": "Event"},
          "response": {"$ref": "Event"}
        }
      }
    }
  }
}`

func buildSample(t *testing.T) *apiContext {
	t.Helper()
	doc, err := ParseDocument([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	a, err := Build(doc, language.Java())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return &apiContext{t: t, api: a}
}

func TestParseDocumentRequiresName(t *testing.T) {
	if _, err := ParseDocument([]byte(`{"version": "v1"}`)); err == nil {
		t.Fatalf("expected error for unnamed document")
	}
	if _, err := ParseDocument([]byte(`{broken`)); err == nil {
		t.Fatalf("expected error for malformed json")
	}
}

func TestBuildApiHeader(t *testing.T) {
	c := buildSample(t)
	if c.api.Name != "calendar" || c.api.Version != "v3" {
		t.Fatalf("unexpected identity %s %s", c.api.Name, c.api.Version)
	}
	if c.api.ClassName != "Calendar" {
		t.Fatalf("unexpected class name %q", c.api.ClassName)
	}
	if c.api.Description != "Lets you manipulate events." {
		t.Fatalf("description not sanitized: %q", c.api.Description)
	}
	if c.api.Module == nil || c.api.Module.Path != "com/google/api/services/calendar" {
		t.Fatalf("unexpected module %+v", c.api.Module)
	}
}

func TestBuildModels(t *testing.T) {
	c := buildSample(t)
	if len(c.api.Models) != 4 {
		t.Fatalf("expected 4 models, got %d", len(c.api.Models))
	}

	event := c.model("Event")
	if len(event.Properties) != 5 {
		t.Fatalf("expected 5 properties, got %d", len(event.Properties))
	}

	// Property keys iterate sorted, so positions are stable.
	types := map[string]string{}
	for _, p := range event.Properties {
		types[p.WireName] = p.CodeType
	}
	want := map[string]string{
		"id":           "java.lang.String",
		"maxAttendees": "java.lang.Integer",
		"start":        "EventDateTime",
		"attachments":  "java.util.List<Attachment>",
		"extras":       "java.util.Map<String, java.lang.String>",
	}
	for name, typ := range want {
		if types[name] != typ {
			t.Fatalf("property %s: got type %q, want %q", name, types[name], typ)
		}
	}

	list := c.model("EventList")
	if list.ArrayOf == nil || list.ArrayOf.ClassName != "Event" {
		t.Fatalf("expected array model of Event, got %+v", list.ArrayOf)
	}
}

func TestBuildMethods(t *testing.T) {
	c := buildSample(t)
	if len(c.api.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(c.api.Methods))
	}

	list := c.method("calendar.events.list")
	if list.CodeName != "eventsList" {
		t.Fatalf("unexpected code name %q", list.CodeName)
	}
	if list.HTTPMethod != "GET" || list.Path != "calendars/{calendarId}/events" {
		t.Fatalf("unexpected transport %s %s", list.HTTPMethod, list.Path)
	}
	if list.ResponseType == nil || list.ResponseType.ClassName != "EventList" {
		t.Fatalf("unexpected response type %+v", list.ResponseType)
	}

	if len(list.RequiredParameters) != 1 || list.RequiredParameters[0].WireName != "calendarId" {
		t.Fatalf("unexpected required parameters %+v", list.RequiredParameters)
	}
	if len(list.OptionalParameters) != 2 {
		t.Fatalf("expected 2 optional parameters, got %d", len(list.OptionalParameters))
	}
	if len(list.PathParameters) != 1 || len(list.QueryParameters) != 2 {
		t.Fatalf("unexpected location split: %d path, %d query",
			len(list.PathParameters), len(list.QueryParameters))
	}

	insert := c.method("calendar.events.insert")
	if insert.RequestType == nil || insert.RequestType.ClassName != "Event" {
		t.Fatalf("unexpected request type %+v", insert.RequestType)
	}
	if insert.RequestType.Description != "A calendar event." {
		t.Fatalf("request type lost its description: %q", insert.RequestType.Description)
	}
}

func TestBuildDeterministic(t *testing.T) {
	first := buildSample(t).api
	second := buildSample(t).api

	for i := range first.Models {
		if first.Models[i].ClassName != second.Models[i].ClassName {
			t.Fatalf("model order differs at %d: %s vs %s",
				i, first.Models[i].ClassName, second.Models[i].ClassName)
		}
	}
	for i := range first.Methods {
		if first.Methods[i].WireName != second.Methods[i].WireName {
			t.Fatalf("method order differs at %d: %s vs %s",
				i, first.Methods[i].WireName, second.Methods[i].WireName)
		}
	}
}

func TestBuildRejectsUnknownOrderedParameter(t *testing.T) {
	doc, err := ParseDocument([]byte(`{
	  "name": "broken",
	  "version": "v1",
	  "methods": {
	    "get": {
	      "id": "broken.get",
	      "parameterOrder": ["ghost"],
	      "parameters": {}
	    }
	  }
	}`))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	if _, err := Build(doc, language.Java()); err == nil {
		t.Fatalf("expected error for parameterOrder naming an unknown parameter")
	}
}

func TestMethodCodeName(t *testing.T) {
	cases := map[string]string{
		"calendar.events.list":          "eventsList",
		"calendar.events.instances.get": "eventsInstancesGet",
		"calendar.get":                  "get",
	}
	for id, want := range cases {
		if got := methodCodeName(id, "calendar"); got != want {
			t.Fatalf("methodCodeName(%q) = %q, want %q", id, got, want)
		}
	}
}
