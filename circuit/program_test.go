package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendValidatesQubits(t *testing.T) {
	tests := []struct {
		name string
		gate Gate
		ok   bool
	}{
		{"hadamard in range", H(1), true},
		{"hadamard out of range", H(2), false},
		{"negative target", X(-1), false},
		{"control out of range", MCX([]int{0, 5}, 1), false},
		{"control equals target", CRY([]int{1}, 1, 0.3), false},
		{"swap in range", SWAP(0, 1), true},
		{"swap out of range", SWAP(0, 2), false},
		{"barrier over all", Fence(), true},
		{"barrier out of range", Fence(0, 3), false},
		{"init matching register", Initialize([]float64{1, 0, 0, 0}, []int{0, 1}), true},
		{"init wrong length", Initialize([]float64{1, 0, 0}, []int{0, 1}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(2)
			err := p.Append(tt.gate)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, 1, p.Len())
			} else {
				require.Error(t, err)
				assert.Equal(t, 0, p.Len())
			}
		})
	}
}

func TestAppendIsAllOrNothing(t *testing.T) {
	p := New(2)
	require.Error(t, p.Append(H(0), H(1), H(7)))
	assert.Equal(t, 0, p.Len())
}

func TestConstructorsCopyArguments(t *testing.T) {
	controls := []int{0, 1}
	g := MCX(controls, 2)
	controls[0] = 9
	assert.Equal(t, []int{0, 1}, g.Controls)

	amps := []float64{1, 0}
	init := Initialize(amps, []int{0})
	amps[0] = 0
	assert.Equal(t, []float64{1, 0}, init.Params)
}

func TestGatesReturnsCopy(t *testing.T) {
	p := New(1)
	require.NoError(t, p.Append(H(0)))
	gates := p.Gates()
	gates[0] = X(0)
	assert.Equal(t, Hadamard, p.At(0).Kind)
}

func TestQubits(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, CRY([]int{0, 1}, 2, 1).Qubits(3))
	assert.Equal(t, []int{1, 0}, SWAP(1, 0).Qubits(3))
	assert.Equal(t, []int{0, 1, 2}, Fence().Qubits(3))
	assert.Equal(t, []int{2}, Fence(2).Qubits(3))
	assert.Equal(t, []int{0, 1}, Initialize([]float64{1, 0, 0, 0}, []int{0, 1}).Qubits(3))
}

func TestGatesOnQubit(t *testing.T) {
	p := New(3)
	require.NoError(t, p.Append(H(0), MCX([]int{0}, 1), Fence(), X(2)))
	assert.Equal(t, []int{0, 1, 2}, p.GatesOnQubit(0))
	assert.Equal(t, []int{2, 3}, p.GatesOnQubit(2))
}

func TestCloneIsIndependent(t *testing.T) {
	p := New(1)
	require.NoError(t, p.Append(H(0)))
	c := p.Clone()
	require.NoError(t, c.Append(X(0)))
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 2, c.Len())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "CRY", ControlledRY.String())
	assert.Equal(t, "INIT", StatePreparation.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
