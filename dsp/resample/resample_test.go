package resample

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-aliasfree/dsp/conv"
	"github.com/cwbudde/algo-aliasfree/dsp/filter/sinc"
	"github.com/cwbudde/algo-aliasfree/dsp/tensor"
	"github.com/cwbudde/algo-aliasfree/internal/testutil"
)

// goldenInput returns 0.8*sin(0.3*i) + 0.01*i for i in [0, 20).
func goldenInput(t *testing.T) *tensor.Tensor {
	t.Helper()

	row := make([]float64, 20)
	for i := range row {
		row[i] = 0.8*math.Sin(0.3*float64(i)) + 0.01*float64(i)
	}

	x, err := tensor.FromRows(row)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}

	return x
}

func TestKernelSizeForRatio(t *testing.T) {
	for ratio, want := range map[int]int{1: 6, 2: 12, 3: 18, 4: 24} {
		if got := KernelSizeForRatio(ratio); got != want {
			t.Fatalf("KernelSizeForRatio(%d)=%d, want %d", ratio, got, want)
		}
	}
}

func TestNewLowPassDefaults(t *testing.T) {
	lp, err := NewLowPass()
	if err != nil {
		t.Fatalf("NewLowPass: %v", err)
	}

	if lp.Cutoff() != DefaultCutoff || lp.HalfWidth() != DefaultHalfWidth ||
		lp.Stride() != DefaultStride || lp.KernelSize() != DefaultKernelSize {
		t.Fatalf("defaults = (%g, %g, %d, %d)", lp.Cutoff(), lp.HalfWidth(), lp.Stride(), lp.KernelSize())
	}

	if l, r := lp.Padding(); l != 5 || r != 6 {
		t.Fatalf("Padding()=(%d, %d), want (5, 6)", l, r)
	}

	odd, err := NewLowPass(WithKernelSize(7))
	if err != nil {
		t.Fatalf("NewLowPass(7): %v", err)
	}

	if l, r := odd.Padding(); l != 3 || r != 3 {
		t.Fatalf("odd Padding()=(%d, %d), want (3, 3)", l, r)
	}
}

func TestLowPassKernelMatchesDesigner(t *testing.T) {
	lp, err := NewLowPass(WithCutoff(0.25), WithHalfWidth(0.3))
	if err != nil {
		t.Fatalf("NewLowPass: %v", err)
	}

	want, err := sinc.KaiserSinc(0.25, 0.3, 12)
	if err != nil {
		t.Fatalf("KaiserSinc: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, lp.Kernel(), want, 0)

	k := lp.Kernel()
	k[0] = 99

	if lp.Kernel()[0] == 99 {
		t.Fatal("Kernel returned internal storage")
	}
}

func TestLowPassCutoffValidation(t *testing.T) {
	for _, cutoff := range []float64{0.6, -0.1, math.NaN(), math.Inf(1)} {
		if _, err := NewLowPass(WithCutoff(cutoff)); !errors.Is(err, ErrInvalidCutoff) {
			t.Fatalf("cutoff %g: expected ErrInvalidCutoff, got %v", cutoff, err)
		}
	}

	for _, cutoff := range []float64{0, 0.25, 0.5} {
		if _, err := NewLowPass(WithCutoff(cutoff)); err != nil {
			t.Fatalf("cutoff %g: unexpected error %v", cutoff, err)
		}
	}
}

func TestLowPassStrideValidation(t *testing.T) {
	for _, stride := range []int{0, -2} {
		if _, err := NewLowPass(WithStride(stride)); !errors.Is(err, ErrInvalidStride) {
			t.Fatalf("stride %d: expected ErrInvalidStride, got %v", stride, err)
		}
	}
}

func TestLowPassZeroCutoffSilences(t *testing.T) {
	lp, err := NewLowPass(WithCutoff(0))
	if err != nil {
		t.Fatalf("NewLowPass: %v", err)
	}

	y, err := lp.Process(testutil.NoiseTensor(3, 2, 3, 32, 1))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	testutil.RequireShape(t, y, 2, 3, 32)

	for i, v := range y.Data() {
		if v != 0 {
			t.Fatalf("index %d: got %g, want 0", i, v)
		}
	}
}

func TestLowPassGolden(t *testing.T) {
	lp, err := NewLowPass()
	if err != nil {
		t.Fatalf("NewLowPass: %v", err)
	}

	y, err := lp.Process(goldenInput(t))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	testutil.RequireShape(t, y, 1, 1, 20)

	want := []float64{0.10339268809374216, 0.3702777136245126, 0.5681149931157058, 0.7293398235715308}
	testutil.RequireSliceNearlyEqual(t, y.Data()[:4], want, 1e-12)
}

func TestLowPassOutputLen(t *testing.T) {
	tests := []struct {
		name   string
		k      int
		stride int
	}{
		{name: "even stride 1", k: 12, stride: 1},
		{name: "odd stride 1", k: 7, stride: 1},
		{name: "even stride 2", k: 12, stride: 2},
		{name: "odd stride 3", k: 9, stride: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lp, err := NewLowPass(WithKernelSize(tt.k), WithStride(tt.stride))
			if err != nil {
				t.Fatalf("NewLowPass: %v", err)
			}

			l, r := lp.Padding()

			for _, n := range []int{1, 2, 9, 10, 31} {
				want := (n+l+r-tt.k)/tt.stride + 1
				if got := lp.OutputLen(n); got != want {
					t.Fatalf("OutputLen(%d)=%d, want %d", n, got, want)
				}

				y, err := lp.Process(testutil.ConstTensor(1, 2, n, 1))
				if err != nil {
					t.Fatalf("Process(n=%d): %v", n, err)
				}

				testutil.RequireShape(t, y, 1, 2, want)
			}
		})
	}
}

func TestLowPassPreservesConstant(t *testing.T) {
	lp, err := NewLowPass(WithCutoff(0.2), WithHalfWidth(0.1), WithKernelSize(15))
	if err != nil {
		t.Fatalf("NewLowPass: %v", err)
	}

	y, err := lp.Process(testutil.ConstTensor(2, 2, 16, -0.75))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	want := testutil.ConstTensor(2, 2, 16, -0.75)
	testutil.RequireTensorNearlyEqual(t, y, want, 1e-12)
}

func TestNewUpsamplerValidation(t *testing.T) {
	if _, err := NewUpsampler(0); !errors.Is(err, ErrInvalidRatio) {
		t.Fatalf("ratio 0: expected ErrInvalidRatio, got %v", err)
	}

	if _, err := NewUpsampler(4, WithKernelSize(3)); !errors.Is(err, ErrInvalidKernelSize) {
		t.Fatalf("k < ratio: expected ErrInvalidKernelSize, got %v", err)
	}

	if _, err := NewUpsampler(2, WithCutoff(0.7)); !errors.Is(err, ErrInvalidCutoff) {
		t.Fatalf("cutoff 0.7: expected ErrInvalidCutoff, got %v", err)
	}
}

func TestUpsamplerParameters(t *testing.T) {
	tests := []struct {
		ratio, k               int
		pad, cropLeft, cropRgt int
	}{
		{ratio: 1, k: 6, pad: 5, cropLeft: 7, cropRgt: 8},
		{ratio: 2, k: 12, pad: 5, cropLeft: 15, cropRgt: 15},
		{ratio: 3, k: 18, pad: 5, cropLeft: 22, cropRgt: 23},
		{ratio: 2, k: 7, pad: 2, cropLeft: 6, cropRgt: 7},
	}

	for _, tt := range tests {
		up, err := NewUpsampler(tt.ratio, WithKernelSize(tt.k))
		if err != nil {
			t.Fatalf("NewUpsampler(%d, %d): %v", tt.ratio, tt.k, err)
		}

		pad, l, r := up.Padding()
		if pad != tt.pad || l != tt.cropLeft || r != tt.cropRgt {
			t.Fatalf("ratio %d k %d: Padding()=(%d, %d, %d), want (%d, %d, %d)",
				tt.ratio, tt.k, pad, l, r, tt.pad, tt.cropLeft, tt.cropRgt)
		}

		if math.Abs(up.Cutoff()-0.5/float64(tt.ratio)) > 1e-15 ||
			math.Abs(up.HalfWidth()-0.6/float64(tt.ratio)) > 1e-15 {
			t.Fatalf("ratio %d: cutoff=%g halfWidth=%g", tt.ratio, up.Cutoff(), up.HalfWidth())
		}
	}
}

func TestUpsamplerOutputLength(t *testing.T) {
	for _, ratio := range []int{1, 2, 3, 4} {
		up, err := NewUpsampler(ratio)
		if err != nil {
			t.Fatalf("NewUpsampler(%d): %v", ratio, err)
		}

		if up.KernelSize() != KernelSizeForRatio(ratio) {
			t.Fatalf("ratio %d: KernelSize()=%d", ratio, up.KernelSize())
		}

		for _, n := range []int{1, 5, 16, 33} {
			if got := up.OutputLen(n); got != n*ratio {
				t.Fatalf("ratio %d: OutputLen(%d)=%d, want %d", ratio, n, got, n*ratio)
			}

			y, err := up.Process(testutil.NoiseTensor(int64(n), 2, 3, n, 1))
			if err != nil {
				t.Fatalf("ratio %d n %d: %v", ratio, n, err)
			}

			testutil.RequireShape(t, y, 2, 3, n*ratio)
			testutil.RequireFinite(t, y.Data())
		}
	}
}

func TestUpsamplerConstant(t *testing.T) {
	tests := []struct {
		ratio, k int
		eps      float64
	}{
		{ratio: 1, k: 6, eps: 1e-12},
		{ratio: 2, k: 12, eps: 1e-12},
		{ratio: 3, k: 18, eps: 5e-3},
		{ratio: 4, k: 24, eps: 5e-3},
	}

	for _, tt := range tests {
		up, err := NewUpsampler(tt.ratio, WithKernelSize(tt.k))
		if err != nil {
			t.Fatalf("NewUpsampler: %v", err)
		}

		y, err := up.Process(testutil.ConstTensor(1, 2, 40, 1.5))
		if err != nil {
			t.Fatalf("Process: %v", err)
		}

		testutil.RequireTensorNearlyEqual(t, y, testutil.ConstTensor(1, 2, 40*tt.ratio, 1.5), tt.eps)
	}
}

func TestUpsamplerGolden(t *testing.T) {
	up, err := NewUpsampler(2, WithKernelSize(12))
	if err != nil {
		t.Fatalf("NewUpsampler: %v", err)
	}

	y, err := up.Process(goldenInput(t))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	testutil.RequireShape(t, y, 1, 1, 40)

	want := []float64{
		-0.019557135945021856, 0.04193100888077942, 0.17636393823675642,
		0.3093683314048811, 0.4205318073989759, 0.5218840921131495,
	}
	testutil.RequireSliceNearlyEqual(t, y.Data()[:6], want, 1e-12)
}

func TestUpsamplerMatchesTransposeConv(t *testing.T) {
	up, err := NewUpsampler(2)
	if err != nil {
		t.Fatalf("NewUpsampler: %v", err)
	}

	x := testutil.NoiseTensor(11, 1, 2, 24, 1)

	y, err := up.Process(x)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	pad, cropL, _ := up.Padding()

	padded, err := conv.ReplicatePad(x, pad, pad)
	if err != nil {
		t.Fatalf("ReplicatePad: %v", err)
	}

	full, err := conv.DepthwiseTranspose(padded, up.Kernel(), up.Ratio())
	if err != nil {
		t.Fatalf("DepthwiseTranspose: %v", err)
	}

	for c := range 2 {
		want := full.Row(0, c)[cropL : cropL+48]
		for i := range want {
			want[i] *= 2
		}

		testutil.RequireSliceNearlyEqual(t, y.Row(0, c), want, 1e-12)
	}
}

func TestUpsamplerSine(t *testing.T) {
	const (
		freq = 0.05
		n    = 64
	)

	up, err := NewUpsampler(2)
	if err != nil {
		t.Fatalf("NewUpsampler: %v", err)
	}

	x := testutil.SineTensor(1, 1, n, freq)

	y, err := up.Process(x)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	// Output sample m sits at input time m/2 - 0.25.
	row := y.Row(0, 0)
	for m := 16; m < len(row)-16; m++ {
		want := math.Sin(2 * math.Pi * freq * (float64(m)/2 - 0.25))
		if math.Abs(row[m]-want) > 5e-3 {
			t.Fatalf("m=%d: got %g, want %g", m, row[m], want)
		}
	}
}

func TestNewDownsamplerValidation(t *testing.T) {
	if _, err := NewDownsampler(0); !errors.Is(err, ErrInvalidRatio) {
		t.Fatalf("ratio 0: expected ErrInvalidRatio, got %v", err)
	}

	if _, err := NewDownsampler(2, WithCutoff(-1)); !errors.Is(err, ErrInvalidCutoff) {
		t.Fatalf("cutoff -1: expected ErrInvalidCutoff, got %v", err)
	}
}

func TestDownsamplerParameters(t *testing.T) {
	down, err := NewDownsampler(3, WithStride(1))
	if err != nil {
		t.Fatalf("NewDownsampler: %v", err)
	}

	lp := down.LowPass()
	if lp.Stride() != 3 || down.Ratio() != 3 || down.KernelSize() != 18 {
		t.Fatalf("stride=%d ratio=%d k=%d", lp.Stride(), down.Ratio(), down.KernelSize())
	}

	if math.Abs(lp.Cutoff()-0.5/3) > 1e-15 || math.Abs(lp.HalfWidth()-0.2) > 1e-15 {
		t.Fatalf("cutoff=%g halfWidth=%g", lp.Cutoff(), lp.HalfWidth())
	}

	testutil.RequireSliceNearlyEqual(t, down.Kernel(), lp.Kernel(), 0)
}

func TestDownsamplerOutputLength(t *testing.T) {
	tests := []struct {
		n, ratio, want int
	}{
		{n: 9, ratio: 2, want: 5},
		{n: 10, ratio: 2, want: 5},
		{n: 11, ratio: 2, want: 6},
		{n: 9, ratio: 3, want: 3},
		{n: 10, ratio: 3, want: 4},
		{n: 25, ratio: 3, want: 9},
	}

	for _, tt := range tests {
		down, err := NewDownsampler(tt.ratio)
		if err != nil {
			t.Fatalf("NewDownsampler: %v", err)
		}

		if got := down.OutputLen(tt.n); got != tt.want {
			t.Fatalf("n %d ratio %d: OutputLen=%d, want %d", tt.n, tt.ratio, got, tt.want)
		}

		y, err := down.Process(testutil.ConstTensor(1, 1, tt.n, 1))
		if err != nil {
			t.Fatalf("Process: %v", err)
		}

		testutil.RequireShape(t, y, 1, 1, tt.want)
	}
}

func TestDownsamplerGolden(t *testing.T) {
	down, err := NewDownsampler(2, WithKernelSize(12))
	if err != nil {
		t.Fatalf("NewDownsampler: %v", err)
	}

	y, err := down.Process(goldenInput(t))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	testutil.RequireShape(t, y, 1, 1, 10)

	want := []float64{0.12159912109596446, 0.5708739614020513, 0.8276472117617035, 0.809661150977918}
	testutil.RequireSliceNearlyEqual(t, y.Data()[:4], want, 1e-12)
}

func TestRoundTripPreservesLength(t *testing.T) {
	for _, ratio := range []int{1, 2, 3, 4} {
		up, err := NewUpsampler(ratio)
		if err != nil {
			t.Fatalf("NewUpsampler: %v", err)
		}

		down, err := NewDownsampler(ratio)
		if err != nil {
			t.Fatalf("NewDownsampler: %v", err)
		}

		for _, n := range []int{7, 16, 40} {
			y, err := up.Process(testutil.NoiseTensor(5, 2, 2, n, 1))
			if err != nil {
				t.Fatalf("up: %v", err)
			}

			z, err := down.Process(y)
			if err != nil {
				t.Fatalf("down: %v", err)
			}

			testutil.RequireShape(t, z, 2, 2, n)
		}
	}
}

func TestRoundTripLowFrequencySine(t *testing.T) {
	const n = 64

	up, err := NewUpsampler(2)
	if err != nil {
		t.Fatalf("NewUpsampler: %v", err)
	}

	down, err := NewDownsampler(2)
	if err != nil {
		t.Fatalf("NewDownsampler: %v", err)
	}

	x := testutil.SineTensor(1, 1, n, 0.05)

	y, err := up.Process(x)
	if err != nil {
		t.Fatalf("up: %v", err)
	}

	z, err := down.Process(y)
	if err != nil {
		t.Fatalf("down: %v", err)
	}

	diff, err := testutil.MaxAbsDiff(z.Row(0, 0)[8:n-8], x.Row(0, 0)[8:n-8])
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}

	if diff > 5e-3 {
		t.Fatalf("round-trip error %g > 5e-3", diff)
	}
}

func TestLowPassSingleSample(t *testing.T) {
	lp, err := NewLowPass(WithKernelSize(12), WithStride(1))
	if err != nil {
		t.Fatalf("NewLowPass: %v", err)
	}

	// Replicate padding always supplies k-1 extra samples, so one sample suffices.
	y, err := lp.Process(testutil.ConstTensor(1, 1, 1, 2))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	testutil.RequireShape(t, y, 1, 1, 1)
	testutil.RequireSliceNearlyEqual(t, y.Data(), []float64{2}, 1e-12)
}

func TestUpsamplerConcurrentProcess(t *testing.T) {
	up, err := NewUpsampler(2)
	if err != nil {
		t.Fatalf("NewUpsampler: %v", err)
	}

	x := testutil.NoiseTensor(9, 1, 2, 40, 1)

	want, err := up.Process(x)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 20 {
				got, err := up.Process(x)
				if err != nil {
					t.Errorf("Process: %v", err)
					return
				}

				if d, _ := testutil.MaxAbsDiff(got.Data(), want.Data()); d != 0 {
					t.Errorf("concurrent result differs by %g", d)
					return
				}
			}
		}()
	}

	wg.Wait()
}

func TestLowPassMatchesDepthwise(t *testing.T) {
	for _, stride := range []int{1, 2, 3} {
		lp, err := NewLowPass(WithCutoff(0.2), WithHalfWidth(0.25), WithStride(stride), WithKernelSize(9))
		if err != nil {
			t.Fatalf("NewLowPass: %v", err)
		}

		x := testutil.NoiseTensor(13, 2, 3, 31, 1)

		y, err := lp.Process(x)
		if err != nil {
			t.Fatalf("Process: %v", err)
		}

		left, right := lp.Padding()

		padded, err := conv.ReplicatePad(x, left, right)
		if err != nil {
			t.Fatalf("ReplicatePad: %v", err)
		}

		want, err := conv.Depthwise(padded, lp.Kernel(), stride)
		if err != nil {
			t.Fatalf("Depthwise: %v", err)
		}

		testutil.RequireTensorNearlyEqual(t, y, want, 1e-12)
	}
}

func TestUpsample2xMatchesUpsampler(t *testing.T) {
	x := testutil.NoiseTensor(3, 2, 2, 20, 1)

	up, err := NewUpsampler(2, WithKernelSize(8))
	if err != nil {
		t.Fatalf("NewUpsampler: %v", err)
	}

	want, err := up.Process(x)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	got, err := Upsample2x(x, WithKernelSize(8))
	if err != nil {
		t.Fatalf("Upsample2x: %v", err)
	}

	testutil.RequireShape(t, got, 2, 2, 40)
	testutil.RequireTensorNearlyEqual(t, got, want, 0)
}

func TestDownsample2xMatchesDownsampler(t *testing.T) {
	x := testutil.NoiseTensor(4, 1, 3, 21, 1)

	down, err := NewDownsampler(2)
	if err != nil {
		t.Fatalf("NewDownsampler: %v", err)
	}

	want, err := down.Process(x)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	got, err := Downsample2x(x)
	if err != nil {
		t.Fatalf("Downsample2x: %v", err)
	}

	testutil.RequireShape(t, got, 1, 3, 11)
	testutil.RequireTensorNearlyEqual(t, got, want, 0)
}

func TestResample2xOptionErrors(t *testing.T) {
	x := testutil.ConstTensor(1, 1, 8, 1)

	if _, err := Upsample2x(x, WithCutoff(0.7)); !errors.Is(err, ErrInvalidCutoff) {
		t.Fatalf("Upsample2x error = %v, want ErrInvalidCutoff", err)
	}

	if _, err := Downsample2x(x, WithCutoff(-1)); !errors.Is(err, ErrInvalidCutoff) {
		t.Fatalf("Downsample2x error = %v, want ErrInvalidCutoff", err)
	}
}

func TestResampleRational(t *testing.T) {
	tests := []struct {
		up, down, n, want int
	}{
		{1, 1, 10, 10},
		{2, 1, 10, 20},
		{1, 2, 10, 5},
		{3, 2, 10, 15},
		{2, 3, 10, 7},
		{4, 3, 7, 10},
	}

	for _, tt := range tests {
		x := testutil.NoiseTensor(8, 1, 2, tt.n, 1)

		y, err := Resample(x, tt.up, tt.down)
		if err != nil {
			t.Fatalf("Resample(%d/%d): %v", tt.up, tt.down, err)
		}

		testutil.RequireShape(t, y, 1, 2, tt.want)
		testutil.RequireFinite(t, y.Data())
	}
}

func TestResampleMatchesStages(t *testing.T) {
	x := testutil.SineTensor(1, 1, 30, 0.03)

	up, err := NewUpsampler(3)
	if err != nil {
		t.Fatalf("NewUpsampler: %v", err)
	}

	down, err := NewDownsampler(2)
	if err != nil {
		t.Fatalf("NewDownsampler: %v", err)
	}

	mid, err := up.Process(x)
	if err != nil {
		t.Fatalf("up: %v", err)
	}

	want, err := down.Process(mid)
	if err != nil {
		t.Fatalf("down: %v", err)
	}

	got, err := Resample(x, 3, 2)
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}

	testutil.RequireTensorNearlyEqual(t, got, want, 0)
}

func TestResampleIdentityCopies(t *testing.T) {
	x := testutil.NoiseTensor(2, 1, 1, 6, 1)

	y, err := Resample(x, 1, 1)
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}

	testutil.RequireTensorNearlyEqual(t, y, x, 0)

	y.Set(0, 0, 0, 42)
	if x.At(0, 0, 0) == 42 {
		t.Fatal("Resample(1, 1) aliases its input")
	}
}

func TestResampleInvalidRatio(t *testing.T) {
	x := testutil.ConstTensor(1, 1, 8, 1)

	for _, r := range [][2]int{{0, 1}, {1, 0}, {-2, 3}} {
		if _, err := Resample(x, r[0], r[1]); !errors.Is(err, ErrInvalidRatio) {
			t.Fatalf("Resample(%d/%d) error = %v, want ErrInvalidRatio", r[0], r[1], err)
		}
	}
}
