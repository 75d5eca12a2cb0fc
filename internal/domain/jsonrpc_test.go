package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestRequest_IsNotification(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{`{"jsonrpc":"2.0","id":1,"method":"ping"}`, false},
		{`{"jsonrpc":"2.0","id":"abc","method":"ping"}`, false},
		{`{"jsonrpc":"2.0","id":0,"method":"ping"}`, false},
		{`{"jsonrpc":"2.0","method":"notifications/initialized"}`, true},
	}

	for _, tt := range tests {
		var req Request
		if err := json.Unmarshal([]byte(tt.input), &req); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
		}
		if got := req.IsNotification(); got != tt.want {
			t.Errorf("IsNotification(%s) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRequest_SessionIDIsNotSerialized(t *testing.T) {
	data, err := json.Marshal(&Request{JSONRPC: "2.0", ID: 1, Method: "ping", SessionID: "s"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "session") || strings.Contains(string(data), "Session") {
		t.Errorf("SessionID leaked into %s", data)
	}
}

func TestResponse_IDAlwaysPresent(t *testing.T) {
	data, err := json.Marshal(NewErrorResponse(nil, ParseError, "Parse error", nil))
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	id, ok := decoded["id"]
	if !ok || id != nil {
		t.Errorf("id = %v (present %v), want null", id, ok)
	}
	if _, ok := decoded["result"]; ok {
		t.Error("result should be omitted on error responses")
	}
	if _, ok := decoded["error"].(map[string]interface{})["data"]; ok {
		t.Error("empty error data should be omitted")
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(float64(3), MethodNotFound, "Method not found", "unknown method: foo")

	if resp.JSONRPC != "2.0" || resp.ID != float64(3) {
		t.Errorf("response = %+v", resp)
	}
	if resp.Error.Code != -32601 || resp.Error.Data != "unknown method: foo" {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestError_ImplementsError(t *testing.T) {
	var err error = &Error{Code: InvalidParams, Message: "missing required parameter: identifier"}

	var rpcErr *Error
	if !errors.As(err, &rpcErr) || rpcErr.Code != InvalidParams {
		t.Fatalf("errors.As failed for %v", err)
	}
	if err.Error() != "missing required parameter: identifier" {
		t.Errorf("Error() = %s", err.Error())
	}
}
