package audio

import (
	"reflect"
	"testing"
)

func TestWithVirtualAppendsWithoutAliasing(t *testing.T) {
	hw := make([]string, 1, 4)
	hw[0] = "Mic"
	got := withVirtual(hw, VirtualInputs)
	want := append([]string{"Mic"}, VirtualInputs...)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("withVirtual = %q, want %q", got, want)
	}
	got[0] = "changed"
	if hw[0] != "Mic" {
		t.Fatalf("withVirtual aliased its input")
	}
}
