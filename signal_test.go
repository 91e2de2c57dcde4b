package modid

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestSignal_Validate(t *testing.T) {
	good := Signal{complex(1, 2), complex(-3, 0)}
	if err := good.Validate(); err != nil {
		t.Errorf("finite signal should validate, got %v", err)
	}

	bad := Signal{complex(1, 2), complex(math.NaN(), 0)}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidSignal) {
		t.Errorf("NaN signal: expected ErrInvalidSignal, got %v", err)
	}

	bad = Signal{complex(0, math.Inf(-1))}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidSignal) {
		t.Errorf("Inf signal: expected ErrInvalidSignal, got %v", err)
	}
}

func TestSignal_Norm(t *testing.T) {
	// |3+4i| = 5, norm = 5
	sig := Signal{complex(3, 4)}
	if n := sig.Norm(); math.Abs(n-5) > 1e-12 {
		t.Errorf("norm = %v, want 5", n)
	}
}

func TestSignal_Normalized(t *testing.T) {
	sig := Signal{complex(3, 4), complex(0, 0)}
	out := sig.Normalized()

	// 归一化后 L2 范数为 1
	if n := out.Norm(); math.Abs(n-1) > 1e-12 {
		t.Errorf("normalized norm = %v, want 1", n)
	}
	// 原信号不被修改
	if sig[0] != complex(3, 4) {
		t.Error("source signal mutated by Normalized")
	}
}

func TestSignal_NormalizedZero(t *testing.T) {
	// 全零信号没有能量，归一化保持原样而不是除零
	sig := Signal{0, 0, 0}
	out := sig.Normalized()
	for i, v := range out {
		if v != 0 {
			t.Errorf("out[%d] = %v, want 0", i, v)
		}
	}
}

func TestSignal_JSONRoundtrip(t *testing.T) {
	sig := Signal{complex(1.5, -2.5), complex(0, 3)}
	b, err := json.Marshal(sig)
	if err != nil {
		t.Fatal(err)
	}

	var back Signal
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if len(back) != len(sig) {
		t.Fatalf("length %d, want %d", len(back), len(sig))
	}
	for i := range sig {
		if back[i] != sig[i] {
			t.Errorf("back[%d] = %v, want %v", i, back[i], sig[i])
		}
	}
}

func TestSignal_JSONLengthMismatch(t *testing.T) {
	var sig Signal
	if err := json.Unmarshal([]byte(`{"i":[1,2],"q":[1]}`), &sig); err == nil {
		t.Error("mismatched i/q lengths should fail to unmarshal")
	}
}

func TestLabel_JSON(t *testing.T) {
	b, err := json.Marshal(LabelQAM)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"QAM"` {
		t.Errorf("marshaled %s, want \"QAM\"", b)
	}

	var l Label
	if err := json.Unmarshal([]byte(`"PSK"`), &l); err != nil {
		t.Fatal(err)
	}
	if l != LabelPSK {
		t.Errorf("unmarshaled %v, want PSK", l)
	}

	if err := json.Unmarshal([]byte(`"FSK"`), &l); err == nil {
		t.Error("unknown label name should fail")
	}
}
