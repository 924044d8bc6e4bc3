package encoding

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swarajaya/Quantum-Image-Representation/circuit"
	"github.com/Swarajaya/Quantum-Image-Representation/imaging"
	"github.com/Swarajaya/Quantum-Image-Representation/internal/basis"
)

func countKind(p *circuit.Program, kind circuit.Kind) int {
	n := 0
	for _, g := range p.Gates() {
		if g.Kind == kind {
			n++
		}
	}
	return n
}

// zeroBits counts the '0' characters over every address of width k.
func zeroBits(pixels, k int) int {
	n := 0
	for idx := range pixels {
		for _, b := range Address(idx, k) {
			if b == '0' {
				n++
			}
		}
	}
	return n
}

func TestAddress(t *testing.T) {
	assert.Equal(t, "0", Address(0, 1))
	assert.Equal(t, "1", Address(1, 1))
	assert.Equal(t, "01", Address(1, 2))
	assert.Equal(t, "10", Address(2, 2))
	assert.Equal(t, "0101", Address(5, 4))
	assert.Equal(t, "", Address(0, 0))
}

func TestFlips(t *testing.T) {
	flips, err := Flips("010", []int{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, []circuit.Gate{circuit.X(4), circuit.X(6)}, flips)

	flips, err = Flips("11", []int{0, 1})
	require.NoError(t, err)
	assert.Empty(t, flips, "all-ones address needs no wrapper")

	flips, err = Flips("00", []int{0, 1})
	require.NoError(t, err)
	assert.Len(t, flips, 2, "all-zeros address flips every position")

	_, err = Flips("0", []int{0, 1})
	require.Error(t, err)
	_, err = Flips("0x", []int{0, 1})
	require.Error(t, err)
}

func TestGuardIsSelfInverse(t *testing.T) {
	positions := []int{0, 1, 2}
	for idx := range 8 {
		for start := range 8 {
			p := circuit.New(3)
			require.NoError(t, Guard(p, Address(idx, 3), positions))
			require.NoError(t, Guard(p, Address(idx, 3), positions))

			before, err := basis.FromAddress(3, Address(start, 3), positions)
			require.NoError(t, err)
			after := before.Clone()
			require.NoError(t, after.Run(p))
			assert.True(t, before.Equal(after), "guard %d on %s", idx, before)
		}
	}
}

func TestGuardFiresOnlyOnItsAddress(t *testing.T) {
	positions := []int{0, 1}
	for guarded := range 4 {
		p := circuit.New(3)
		require.NoError(t, Guard(p, Address(guarded, 2), positions, circuit.MCX(positions, 2)))

		for idx := range 4 {
			s, err := basis.FromAddress(3, Address(idx, 2), positions)
			require.NoError(t, err)
			require.NoError(t, s.Run(p))
			assert.Equal(t, idx == guarded, s.Bit(2), "guard %d, input %d", guarded, idx)
			assert.Equal(t, Address(idx, 2), s.Address(positions), "positions restored")
		}
	}
}

func TestFRQIConcreteScenario(t *testing.T) {
	// Two pixels need a single position qubit.
	p, err := EncodeFRQI(imaging.Gray{{0.2, 0.5}})
	require.NoError(t, err)
	assert.Equal(t, 2, p.NumQubits)

	want := []circuit.Gate{
		circuit.H(0),
		circuit.X(0),
		circuit.CRY([]int{0}, 1, 2*math.Pi*0.2),
		circuit.X(0),
		circuit.CRY([]int{0}, 1, 2*math.Pi*0.5),
	}
	assert.Equal(t, want, p.Gates())
}

func TestFRQI2x2(t *testing.T) {
	img := imaging.Gray{{0.2, 0.5}, {0.7, 0.9}}
	p, err := EncodeFRQI(img)
	require.NoError(t, err)

	assert.Equal(t, 3, p.NumQubits)
	assert.Equal(t, 2, countKind(p, circuit.Hadamard))
	assert.Equal(t, 4, countKind(p, circuit.ControlledRY))
	// k + Σ(2·zeros + 1) = 2 + 2·4 + 4
	assert.Equal(t, 2+2*zeroBits(4, 2)+4, p.Len())
	assert.Equal(t, 14, p.Len())

	values := img.Flatten()
	i := 0
	for _, g := range p.Gates() {
		if g.Kind != circuit.ControlledRY {
			continue
		}
		assert.Equal(t, []int{0, 1}, g.Controls)
		assert.Equal(t, 2, g.Target)
		assert.InDelta(t, 2*math.Pi*values[i], g.Angle(), 1e-12)
		i++
	}
}

func TestFRQI4x4(t *testing.T) {
	img := make(imaging.Gray, 4)
	for r := range img {
		img[r] = []float64{0.1, 0.4, 0.6, 1}
	}
	p, err := EncodeFRQI(img)
	require.NoError(t, err)

	assert.Equal(t, 5, p.NumQubits)
	assert.Equal(t, 4, countKind(p, circuit.Hadamard))
	assert.Equal(t, 16, countKind(p, circuit.ControlledRY))
	assert.Equal(t, 4+2*zeroBits(16, 4)+16, p.Len())
	assert.Equal(t, 84, p.Len())
}

func TestFRQISinglePixel(t *testing.T) {
	p, err := EncodeFRQI(imaging.Gray{{0.25}})
	require.NoError(t, err)
	assert.Equal(t, 1, p.NumQubits)
	require.Equal(t, 1, p.Len())
	assert.Equal(t, circuit.ControlledRY, p.At(0).Kind)
	assert.Empty(t, p.At(0).Controls)

	back, err := circuit.ParseQASM(p.QASM())
	require.NoError(t, err)
	assert.Equal(t, p.Gates(), back.Gates())
}

func TestNEQR(t *testing.T) {
	// levels: round(0·3)=0, round(0.4·3)=1, round(0.6·3)=2, round(1·3)=3
	img := imaging.Gray{{0, 0.4}, {0.6, 1}}
	p, err := EncodeNEQR(img)
	require.NoError(t, err)
	assert.Equal(t, 4, p.NumQubits)

	want := []circuit.Gate{
		circuit.H(0), circuit.H(1),
		// pixel 0, address 00, level 0
		circuit.X(0), circuit.X(1), circuit.X(0), circuit.X(1),
		// pixel 1, address 01, level 1
		circuit.X(0), circuit.MCX([]int{0, 1}, 2), circuit.X(0),
		// pixel 2, address 10, level 2
		circuit.X(1), circuit.MCX([]int{0, 1}, 3), circuit.X(1),
		// pixel 3, address 11, level 3
		circuit.MCX([]int{0, 1}, 2), circuit.MCX([]int{0, 1}, 3),
	}
	assert.Equal(t, want, p.Gates())
}

func TestNEQRWritesIntensityBits(t *testing.T) {
	img := imaging.Gray{{0, 0.4}, {0.6, 1}}
	p, err := EncodeNEQR(img)
	require.NoError(t, err)

	// Skip the Hadamards and run the address blocks on each basis address.
	blocks := circuit.New(p.NumQubits)
	require.NoError(t, blocks.Append(p.Gates()[2:]...))

	positions := []int{0, 1}
	for idx, v := range img.Flatten() {
		s, err := basis.FromAddress(4, Address(idx, 2), positions)
		require.NoError(t, err)
		require.NoError(t, s.Run(blocks))
		level := neqrLevel(v)
		assert.Equal(t, level&1 == 1, s.Bit(2), "pixel %d bit 0", idx)
		assert.Equal(t, level&2 == 2, s.Bit(3), "pixel %d bit 1", idx)
	}
}

func TestQRAM(t *testing.T) {
	img := imaging.Gray{{0.2, 0.5}, {0.7, 0.9}}
	p, err := EncodeQRAM(img)
	require.NoError(t, err)
	assert.Equal(t, 3, p.NumQubits)

	want := []circuit.Gate{
		circuit.X(0), circuit.X(1), circuit.RY(2, 2*math.Asin(0.2)), circuit.X(0), circuit.X(1),
		circuit.X(0), circuit.RY(2, 2*math.Asin(0.5)), circuit.X(0),
		circuit.X(1), circuit.RY(2, 2*math.Asin(0.7)), circuit.X(1),
		circuit.RY(2, 2*math.Asin(0.9)),
	}
	assert.Equal(t, want, p.Gates())

	for _, g := range p.Gates() {
		assert.Empty(t, g.Controls, "QRAM rotations are not address-controlled")
	}
}

func TestQRAMRequiresFourPixels(t *testing.T) {
	_, err := EncodeQRAM(imaging.Gray{{0.1, 0.2}})
	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, QRAM, pre.Scheme)
	assert.Equal(t, 2, pre.PixelCount)
}

func TestMCQIConcreteScenario(t *testing.T) {
	p, err := EncodeMCQI(imaging.Pixel{0.6, 0.3, 0.8})
	require.NoError(t, err)
	assert.Equal(t, 3, p.NumQubits)

	want := []circuit.Gate{
		circuit.RY(0, 2*math.Asin(0.6)),
		circuit.RY(1, 2*math.Asin(0.3)),
		circuit.RY(2, 2*math.Asin(0.8)),
	}
	assert.Equal(t, want, p.Gates())
}

func TestMCQIImageUsesFirstPixel(t *testing.T) {
	img := imaging.RGB{
		{{0.6, 0.3, 0.8}, {1, 1, 1}},
		{{0, 0, 0}, {0.5, 0.5, 0.5}},
	}
	p, err := EncodeMCQIImage(img)
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Asin(0.6), p.At(0).Angle(), 1e-12)

	_, err = EncodeMCQIImage(imaging.RGB{})
	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
	require.ErrorIs(t, err, imaging.ErrEmpty)
}

func TestAmplitudeUnitNorm(t *testing.T) {
	tests := []struct {
		name   string
		img    imaging.Gray
		qubits int
	}{
		{"2x2", imaging.Gray{{0.2, 0.5}, {0.7, 0.9}}, 2},
		{"4x4", imaging.Gray{{1, 0, 0, 0}, {0, 0.3, 0, 0}, {0, 0, 0.5, 0}, {0, 0, 0, 0.01}}, 4},
		{"single pixel", imaging.Gray{{0.4}}, 1},
		{"padded", imaging.Gray{{0.1, 0.2, 0.3}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := EncodeAmplitude(tt.img)
			require.NoError(t, err)
			assert.Equal(t, tt.qubits, p.NumQubits)
			require.Equal(t, 1, p.Len())

			g := p.At(0)
			assert.Equal(t, circuit.StatePreparation, g.Kind)
			assert.Len(t, g.Params, 1<<tt.qubits)

			var sum float64
			for _, a := range g.Params {
				sum += a * a
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
		})
	}
}

func TestAmplitudeZeroVector(t *testing.T) {
	_, err := EncodeAmplitude(imaging.Gray{{0, 0}, {0, 0}})
	var degenerate *DegenerateInputError
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, 4, degenerate.Length)
}

func TestPreconditionErrors(t *testing.T) {
	tests := []struct {
		name   string
		scheme Scheme
		img    imaging.Gray
	}{
		{"frqi three pixels", FRQI, imaging.Gray{{0.1, 0.2, 0.3}}},
		{"neqr 3x3", NEQR, imaging.Gray{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}},
		{"frqi empty", FRQI, imaging.Gray{}},
		{"neqr ragged", NEQR, imaging.Gray{{0.1, 0.2}, {0.3}}},
		{"amplitude empty", Amplitude, imaging.Gray{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := Synthesize(tt.scheme, Input{Gray: tt.img})
			assert.Nil(t, enc, "no partial program on error")
			var pre *PreconditionError
			require.ErrorAs(t, err, &pre)
			assert.Equal(t, tt.scheme, pre.Scheme)
		})
	}
}

func TestOutOfDomain(t *testing.T) {
	tests := []struct {
		name   string
		scheme Scheme
		in     Input
		index  int
	}{
		{"frqi above one", FRQI, Input{Gray: imaging.Gray{{0.1, 1.2}}}, 1},
		{"qram negative", QRAM, Input{Gray: imaging.Gray{{0.1, 0.2}, {-0.5, 0.3}}}, 2},
		{"mcqi channel", MCQI, Input{Color: imaging.RGB{{{0.1, 2, 0.3}}}}, 1},
		{"amplitude nan", Amplitude, Input{Gray: imaging.Gray{{math.NaN(), 0.3}}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Synthesize(tt.scheme, tt.in)
			var ood *OutOfDomainError
			require.ErrorAs(t, err, &ood)
			assert.Equal(t, tt.index, ood.Index)
		})
	}
}

func TestMarginalValuesAreClamped(t *testing.T) {
	p, err := EncodeQRAM(imaging.Gray{{1 + 1e-12, 0.5}, {-1e-12, 0.5}})
	require.NoError(t, err)
	assert.False(t, math.IsNaN(p.At(2).Angle()))
	assert.InDelta(t, math.Pi, p.At(2).Angle(), 1e-12)
}

func TestSynthesizeLayout(t *testing.T) {
	in := Input{
		Gray:  imaging.Gray{{0.2, 0.5}, {0.7, 0.9}},
		Color: imaging.RGB{{{0.6, 0.3, 0.8}}},
	}
	tests := []struct {
		scheme   Scheme
		qubits   int
		position []int
		data     []int
	}{
		{FRQI, 3, []int{0, 1}, []int{2}},
		{NEQR, 4, []int{0, 1}, []int{2, 3}},
		{QRAM, 3, []int{0, 1}, []int{2}},
		{MCQI, 3, []int{}, []int{0, 1, 2}},
		{Amplitude, 2, []int{}, []int{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.scheme.String(), func(t *testing.T) {
			enc, err := Synthesize(tt.scheme, in)
			require.NoError(t, err)
			assert.Equal(t, tt.scheme, enc.Scheme)
			assert.Equal(t, tt.qubits, enc.Program.NumQubits)
			assert.Equal(t, tt.data, enc.Data)
			if len(tt.position) == 0 {
				assert.Empty(t, enc.Position)
			} else {
				assert.Equal(t, tt.position, enc.Position)
			}
		})
	}
}

func TestSynthesizeUnknownScheme(t *testing.T) {
	_, err := Synthesize(Scheme(99), Input{})
	require.True(t, errors.Is(err, ErrUnknownScheme))
}

func TestParseScheme(t *testing.T) {
	for _, s := range Schemes() {
		got, err := ParseScheme(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	got, err := ParseScheme("frqi")
	require.NoError(t, err)
	assert.Equal(t, FRQI, got)

	_, err = ParseScheme("hsv")
	require.ErrorIs(t, err, ErrUnknownScheme)
}

func TestHybrid(t *testing.T) {
	img := imaging.Gray{{0.9, 0.3}, {0.8, 0.4}}
	h, err := Hybrid(img, 0.6)
	require.NoError(t, err)

	assert.Equal(t, [][]bool{{true, false}, {true, false}}, h.Mask)
	require.Len(t, h.ROI, 2)
	require.Len(t, h.Background, 2)
	assert.InDelta(t, 0.9/math.Hypot(0.9, 0.8), h.ROI[0], 1e-12)
	assert.InDelta(t, 0.3/math.Hypot(0.3, 0.4), h.Background[0], 1e-12)
	assert.Len(t, h.State(), 4)
}

func TestHybridEmptyAndDegenerateParts(t *testing.T) {
	h, err := Hybrid(imaging.Gray{{0.1, 0.2}}, 0.6)
	require.NoError(t, err)
	assert.Empty(t, h.ROI)
	assert.Len(t, h.Background, 2)

	_, err = Hybrid(imaging.Gray{{0, 0.9}}, 0.6)
	var degenerate *DegenerateInputError
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, Amplitude, degenerate.Scheme)
}
