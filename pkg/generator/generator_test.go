package generator_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-clientgen/pkg/api"
	"github.com/goliatone/go-clientgen/pkg/engine"
	"github.com/goliatone/go-clientgen/pkg/generator"
)

func testAPI() *api.Api {
	return &api.Api{
		Name:      "calendar",
		Version:   "v3",
		ClassName: "Calendar",
		Models: []*api.Model{
			{ClassName: "Event", WireName: "event"},
			{ClassName: "Attendee", WireName: "attendee"},
		},
		Methods: []*api.Method{
			{CodeName: "eventsList", WireName: "calendar.events.list"},
			{CodeName: "eventsInsert", WireName: "calendar.events.insert"},
		},
	}
}

func testEngine(t *testing.T, fsys fstest.MapFS) *engine.Engine {
	t.Helper()
	e, err := engine.New(engine.WithTemplates(fsys))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func TestGenerateAllArtifacts(t *testing.T) {
	fsys := fstest.MapFS{
		"java/model.tmpl":     {Data: []byte("model {{ model.className }} of {{ api.className }}")},
		"java/rpcmethod.tmpl": {Data: []byte("method {{ method.codeName }}")},
	}
	gen, err := generator.New(generator.WithEngine(testEngine(t, fsys)), generator.WithWorkers(4))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	artifacts, err := gen.Generate(context.Background(), testAPI())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(artifacts) != 4 {
		t.Fatalf("expected 4 artifacts, got %d", len(artifacts))
	}

	byName := map[string]string{}
	for _, a := range artifacts {
		byName[a.Name] = a.Content
	}
	if byName["model/Event"] != "model Event of Calendar" {
		t.Fatalf("unexpected model render %q", byName["model/Event"])
	}
	if byName["method/eventsList"] != "method eventsList" {
		t.Fatalf("unexpected method render %q", byName["method/eventsList"])
	}
}

func TestGenerateDeterministicOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"java/model.tmpl":     {Data: []byte("{{ model.className }}")},
		"java/rpcmethod.tmpl": {Data: []byte("{{ method.codeName }}")},
	}
	gen, err := generator.New(generator.WithEngine(testEngine(t, fsys)), generator.WithWorkers(8))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	var previous []string
	for run := 0; run < 5; run++ {
		artifacts, err := gen.Generate(context.Background(), testAPI())
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		names := make([]string, len(artifacts))
		for i, a := range artifacts {
			names[i] = a.Name
		}
		if previous != nil {
			for i := range names {
				if names[i] != previous[i] {
					t.Fatalf("order differs between runs: %v vs %v", names, previous)
				}
			}
		}
		previous = names
	}
}

func TestGenerateIsolatesFailures(t *testing.T) {
	// The method template dereferences a missing attribute, so every method
	// render fails while every model render still succeeds.
	fsys := fstest.MapFS{
		"java/model.tmpl":     {Data: []byte("{{ model.className }}")},
		"java/rpcmethod.tmpl": {Data: []byte("{{ method.nonsense }}")},
	}
	gen, err := generator.New(generator.WithEngine(testEngine(t, fsys)))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	artifacts, err := gen.Generate(context.Background(), testAPI())
	if err == nil {
		t.Fatalf("expected joined render failures")
	}
	if len(artifacts) != 2 {
		t.Fatalf("expected the 2 model artifacts to survive, got %d", len(artifacts))
	}
	for _, a := range artifacts {
		if !strings.HasPrefix(a.Name, "model/") {
			t.Fatalf("unexpected surviving artifact %q", a.Name)
		}
	}
	if !strings.Contains(err.Error(), "method/eventsList") {
		t.Fatalf("error does not name the failed artifact: %v", err)
	}
}

func TestGenerateRejectsInvalidContext(t *testing.T) {
	fsys := fstest.MapFS{
		"java/model.tmpl":     {Data: []byte("x")},
		"java/rpcmethod.tmpl": {Data: []byte("x")},
	}
	gen, err := generator.New(generator.WithEngine(testEngine(t, fsys)))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	broken := testAPI()
	broken.Models[0].ClassName = ""
	if _, err := gen.Generate(context.Background(), broken); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestNewRequiresEngine(t *testing.T) {
	if _, err := generator.New(); err == nil {
		t.Fatalf("expected error without engine")
	}
}
