package broker

import (
	"testing"
)

func TestMessageData(t *testing.T) {
	m := Message{ID: "1-0", Values: map[string]interface{}{"data": `{"testOrderId":"abc"}`}}
	data, err := m.Data()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"testOrderId":"abc"}` {
		t.Errorf("unexpected payload: %s", data)
	}
}

func TestMessageData_Missing(t *testing.T) {
	m := Message{ID: "1-0", Values: map[string]interface{}{"other": "x"}}
	if _, err := m.Data(); err == nil {
		t.Error("expected error for missing data field")
	}
}

func TestMessageData_WrongType(t *testing.T) {
	m := Message{ID: "1-0", Values: map[string]interface{}{"data": 42}}
	if _, err := m.Data(); err == nil {
		t.Error("expected error for non-string data field")
	}
}
