package server

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/inference-sim/port-sim/sim"
	"github.com/inference-sim/port-sim/sim/trace"
)

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()
	s, err := jsonschema.Compile(filepath.Join("..", "schemas", name))
	if err != nil {
		t.Fatalf("compile %s: %v", name, err)
	}
	return s
}

func validateJSON(t *testing.T, s *jsonschema.Schema, doc any) {
	t.Helper()
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := s.Validate(v); err != nil {
		t.Fatalf("validate: %v\n%s", err, b)
	}
}

func TestSchemas_SnapshotMessages(t *testing.T) {
	snapshotSchema := compileSchema(t, "snapshot.schema.json")
	messageSchema := compileSchema(t, "message.schema.json")

	// GIVEN a busy run with every lifecycle stage populated at some point
	cfg := sim.DefaultConfig()
	cfg.Arrival.RatePerHour = 30
	cfg.Berths.PilotageMinutes = 3
	run, err := sim.NewRun(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	run.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelLifecycle})

	// WHEN each snapshot is marshalled
	// THEN both the bare snapshot and its envelope satisfy the schemas
	validateJSON(t, snapshotSchema, run.Snapshot())
	for run.Running() {
		snap := run.Step(1)
		validateJSON(t, snapshotSchema, snap)
		if snap.Minute%50 == 0 {
			validateJSON(t, messageSchema, snapshotMessage("s-1", snap))
		}
	}
}

func TestSchemas_ErrorMessage(t *testing.T) {
	s := compileSchema(t, "message.schema.json")
	validateJSON(t, s, errorMessage("s-1", sim.ErrInvalidConfig))
}

func TestSchemas_Commands(t *testing.T) {
	s := compileSchema(t, "command.schema.json")
	for _, raw := range []string{
		`{"type":"start"}`,
		`{"type":"stop"}`,
		`{"type":"start","config":{"run_length":60}}`,
		`{"type":"configure","config":{"berths":{"count":4},"use_priority":false}}`,
	} {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			t.Fatal(err)
		}
		if err := s.Validate(v); err != nil {
			t.Errorf("%s: %v", raw, err)
		}
	}

	var bad any
	_ = json.Unmarshal([]byte(`{"type":"pause"}`), &bad)
	if err := s.Validate(bad); err == nil {
		t.Error("expected unknown command type to be rejected")
	}
}
