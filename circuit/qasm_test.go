package circuit

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAngle(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		// Plain numbers
		{"1.5707", 1.5707, true},
		{"3.14", 3.14, true},
		{"-0.5", -0.5, true},
		{"0", 0, true},
		{"42", 42, true},

		// Pi constant
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},

		// Pi fractions
		{"pi/2", math.Pi / 2, true},
		{"pi/4", math.Pi / 4, true},

		// Coefficients
		{"2pi", 2 * math.Pi, true},
		{"2*pi", 2 * math.Pi, true},
		{"3*pi/4", 3 * math.Pi / 4, true},

		// Negative
		{"-pi", -math.Pi, true},
		{"-pi/2", -math.Pi / 2, true},

		// Whitespace
		{" pi / 2 ", math.Pi / 2, true},

		// Invalid
		{"", 0, false},
		{"abc", 0, false},
		{"pi/0", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseAngle(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseAngle(%q): ok=%v, want ok=%v", tt.input, ok, tt.ok)
			continue
		}
		if ok && math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("ParseAngle(%q) = %g, want %g", tt.input, got, tt.want)
		}
	}
}

func TestFormatAngle(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{-math.Pi / 2, "-pi/2"},
		{2 * math.Pi, "2*pi"},
		{1.5, "1.5"},
		{0, "0"},
		{0.01, "0.01"},
		{1.2566370614359172, "1.2566370614359172"},
	}

	for _, tt := range tests {
		got := FormatAngle(tt.input)
		if got != tt.want {
			t.Errorf("FormatAngle(%g) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatAngleRoundTrip(t *testing.T) {
	for _, v := range []float64{math.Pi / 3, -3 * math.Pi / 4, 2 * math.Pi * 0.7, 1e-12} {
		got, ok := ParseAngle(FormatAngle(v))
		require.True(t, ok, FormatAngle(v))
		assert.Equal(t, v, got)
	}
}

func TestWriteQASM(t *testing.T) {
	p := New(4)
	require.NoError(t, p.Append(
		H(0),
		X(1),
		RY(3, math.Pi/2),
		CRY([]int{0}, 3, math.Pi),
		CRY([]int{0, 1, 2}, 3, 0.5),
		MCX([]int{0, 1}, 2),
		MCX([]int{0, 1, 2}, 3),
		SWAP(0, 1),
		Fence(),
		Z(2),
	))

	qasm := p.QASM()
	for _, want := range []string{
		"OPENQASM 2.0;",
		"qreg q[4];",
		"h q[0];",
		"x q[1];",
		"ry(pi/2) q[3];",
		"cry(pi) q[0], q[3];",
		"mcry(0.5) q[0], q[1], q[2], q[3];",
		"ccx q[0], q[1], q[2];",
		"mcx q[0], q[1], q[2], q[3];",
		"swap q[0], q[1];",
		"barrier q[0], q[1], q[2], q[3];",
		"z q[2];",
	} {
		assert.Contains(t, qasm, want)
	}
}

func TestUncontrolledGatesKeepTheirKind(t *testing.T) {
	p := New(2)
	require.NoError(t, p.Append(CRY(nil, 0, 0.5), MCX([]int{}, 1)))

	qasm := p.QASM()
	assert.Contains(t, qasm, "mcry(0.5) q[0];")
	assert.Contains(t, qasm, "mcx q[1];")

	back, err := ParseQASM(qasm)
	require.NoError(t, err)
	assert.Equal(t, p.Gates(), back.Gates())
	assert.Equal(t, ControlledRY, back.At(0).Kind)
	assert.Equal(t, ControlledX, back.At(1).Kind)
}

func TestQASMRoundTrip(t *testing.T) {
	p := New(3)
	require.NoError(t, p.Append(
		H(0),
		H(1),
		X(0),
		CRY([]int{0, 1}, 2, 2*math.Pi*0.2),
		X(0),
		MCX([]int{1}, 2),
		Fence(0, 1),
		SWAP(0, 1),
		Fence(),
		Initialize([]float64{0.5, 0.5, 0.5, 0.5}, []int{0, 1}),
	))

	got, err := ParseQASM(p.QASM())
	require.NoError(t, err)
	assert.Equal(t, p.NumQubits, got.NumQubits)
	assert.Equal(t, p.Gates(), got.Gates())
}

func TestParseQASMErrors(t *testing.T) {
	tests := []struct {
		name string
		qasm string
		want string
	}{
		{"no qreg", "h q[0];", "gate before qreg"},
		{"missing qreg entirely", "OPENQASM 2.0;", "no qreg"},
		{"unknown gate", "qreg q[2];\nfoo q[0];", "unsupported gate"},
		{"out of range", "qreg q[2];\nh q[5];", "out of range"},
		{"bad arity", "qreg q[3];\ncx q[0], q[1], q[2];", "expected 2 qubits"},
		{"garbage", "qreg q[2];\nmeasure q[0] -> c[0];", "unsupported statement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQASM(tt.qasm)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), "error %q should mention %q", err, tt.want)
		})
	}
}
