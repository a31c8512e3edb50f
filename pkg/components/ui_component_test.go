package components

import (
	"testing"

	"github.com/decker502/alphacoaster/pkg/utils"
)

func TestUIStateString(t *testing.T) {
	tests := []struct {
		state UIState
		want  string
	}{
		{UINormal, "normal"},
		{UIHovered, "hovered"},
		{UIClicked, "pressed"},
		{UIDisabled, "disabled"},
		{UIState(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("UIState(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}

func TestNewTransformDefaults(t *testing.T) {
	tr := NewTransform(utils.V3(1, 2, 3))
	if tr.Parent != 0 {
		t.Errorf("root transform parent = %d, want 0", tr.Parent)
	}
	if tr.LocalScale != 1 || tr.WorldScale != 1 {
		t.Errorf("scale = %v/%v, want 1/1", tr.LocalScale, tr.WorldScale)
	}
	if !tr.Visible || !tr.WorldVisible {
		t.Error("new transform should be visible")
	}
	if tr.WorldPosition != utils.V3(1, 2, 3) {
		t.Errorf("world position = %+v, want (1,2,3)", tr.WorldPosition)
	}

	child := NewChildTransform(7, utils.V3(0, 1, 0))
	if child.Parent != 7 {
		t.Errorf("child parent = %d, want 7", child.Parent)
	}
}
