package protocol

import "testing"

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Handshaking, "Handshaking"},
		{Status, "Status"},
		{Login, "Login"},
		{Configuration, "Configuration"},
		{Play, "Play"},
		{State(9), "State(9)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, 期望 %q", int(tt.state), got, tt.want)
		}
	}
}

// TestStateMatchesNextState 握手的 next state 字段可直接转换为 State
func TestStateMatchesNextState(t *testing.T) {
	if State(NextStateStatus) != Status || State(NextStateLogin) != Login {
		t.Error("Status/Login 的取值应与握手 next state 一致")
	}
}
