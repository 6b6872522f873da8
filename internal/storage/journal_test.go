package storage

import (
	"bytes"
	"testing"

	"github.com/vovakirdan/starfall/internal/core"
)

func TestEncodeInputsRunLength(t *testing.T) {
	right := core.FrameOf(core.ActionRight)
	in := []core.InputFrame{right, right, right, {}, {}}

	got := EncodeInputs(in)
	want := []byte{byte(right.Mask()), 3, 0, 2}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeInputs() = %v, expected %v", got, want)
	}
	if len(EncodeInputs(nil)) != 0 {
		t.Error("empty journal encoded to non-empty blob")
	}
}

func TestDecodeInputs(t *testing.T) {
	tests := []struct {
		name    string
		blob    []byte
		ticks   int
		wantErr bool
	}{
		{"empty", nil, 0, false},
		{"two runs", []byte{0, 2, 4, 1}, 3, false},
		{"missing run", []byte{4}, 0, true},
		{"zero run", []byte{4, 0}, 0, true},
		{"truncated varint", []byte{0x80}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeInputs(tt.blob)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeInputs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != tt.ticks {
				t.Errorf("decoded %d ticks, expected %d", len(got), tt.ticks)
			}
		})
	}
}

func TestDecodeInputsRestoresActions(t *testing.T) {
	in := []core.InputFrame{
		core.FrameOf(core.ActionLeft, core.ActionUp),
		core.FrameOf(core.ActionPointer),
		core.FrameOf(core.ActionPointer),
	}
	got, err := DecodeInputs(EncodeInputs(in))
	if err != nil {
		t.Fatal(err)
	}
	if !got[0].Has(core.ActionLeft) || !got[0].Has(core.ActionUp) || got[0].Has(core.ActionRight) {
		t.Errorf("tick 0 = %016b", got[0].Mask())
	}
	if !got[2].Has(core.ActionPointer) {
		t.Errorf("tick 2 = %016b", got[2].Mask())
	}
}
