package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	m := New()

	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.registry == nil {
		t.Error("Registry is nil")
	}
	if m.ToolsRegisteredTotal == nil {
		t.Error("ToolsRegisteredTotal is nil")
	}
	if m.ToolExecutionsTotal == nil {
		t.Error("ToolExecutionsTotal is nil")
	}
	if m.ToolExecutionSeconds == nil {
		t.Error("ToolExecutionSeconds is nil")
	}
	if m.ToolSearchesTotal == nil {
		t.Error("ToolSearchesTotal is nil")
	}
	if m.TraceFetchesTotal == nil {
		t.Error("TraceFetchesTotal is nil")
	}
}

func TestRecorderCallbacks(t *testing.T) {
	m := New()

	m.ToolRegistered("add")
	m.ExecutionObserved("add", "ok", 150*time.Millisecond)
	m.ExecutionObserved("add", "error", 10*time.Millisecond)
	m.SearchObserved("addition", 1)
	m.TraceFetchObserved("ok")

	families, err := m.registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	names := make(map[string]bool)
	for _, mf := range families {
		names[*mf.Name] = true
	}

	for _, expected := range []string{
		"toolbelt_tools_registered_total",
		"toolbelt_tool_executions_total",
		"toolbelt_tool_execution_duration_seconds",
		"toolbelt_tool_searches_total",
		"toolbelt_trace_fetches_total",
	} {
		if !names[expected] {
			t.Errorf("Metric not found: %s", expected)
		}
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ToolRegistered("add")
	m.ExecutionObserved("add", "ok", time.Second)

	handler := m.Handler()
	if handler == nil {
		t.Fatal("Handler returned nil")
	}

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "toolbelt_tool_executions_total") {
		t.Error("Metrics output missing toolbelt_tool_executions_total")
	}
	if !strings.Contains(body, "toolbelt_tools_registered_total") {
		t.Error("Metrics output missing toolbelt_tools_registered_total")
	}
}

func TestMetricsIsolation(t *testing.T) {
	m1 := New()
	m2 := New()

	m1.ToolRegistered("a")
	m1.ToolRegistered("b")
	m2.ToolRegistered("c")

	families, _ := m1.registry.Gather()
	for _, mf := range families {
		if *mf.Name == "toolbelt_tools_registered_total" {
			if len(mf.Metric) > 0 && *mf.Metric[0].Counter.Value != 2 {
				t.Errorf("m1: Expected value 2, got %f", *mf.Metric[0].Counter.Value)
			}
		}
	}

	families, _ = m2.registry.Gather()
	for _, mf := range families {
		if *mf.Name == "toolbelt_tools_registered_total" {
			if len(mf.Metric) > 0 && *mf.Metric[0].Counter.Value != 1 {
				t.Errorf("m2: Expected value 1, got %f", *mf.Metric[0].Counter.Value)
			}
		}
	}
}
