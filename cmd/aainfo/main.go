// Command aainfo prints the filter properties of an anti-aliased SnakeBeta
// activation and checks its resampling round trip on a test sine.
//
// Usage:
//
//	aainfo [flags]
//
// Examples:
//
//	aainfo
//	aainfo -up 4 -down 4 -up-k 24 -down-k 24
//	aainfo -config aa.yaml -state
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-aliasfree/dsp/activation"
	"github.com/cwbudde/algo-aliasfree/dsp/filter/sinc"
	"github.com/cwbudde/algo-aliasfree/dsp/tensor"
	"github.com/cwbudde/algo-aliasfree/dsp/window"
	"github.com/cwbudde/algo-aliasfree/stats/level"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	channels := flag.Int("channels", 0, "number of channels")
	upRatio := flag.Int("up", 0, "upsampling ratio")
	downRatio := flag.Int("down", 0, "downsampling ratio")
	upKernel := flag.Int("up-k", 0, "upsampling kernel size")
	downKernel := flag.Int("down-k", 0, "downsampling kernel size")
	fftSize := flag.Int("fft", 0, "FFT size for the frequency response")
	length := flag.Int("length", 0, "test signal length in samples")
	dumpState := flag.Bool("state", false, "print the module state as YAML")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: aainfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints kernel properties of an anti-aliased SnakeBeta activation.\n")
		fmt.Fprintf(os.Stderr, "Flags override values from -config.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  aainfo -up 4 -down 4 -up-k 24 -down-k 24\n")
		fmt.Fprintf(os.Stderr, "  aainfo -config aa.yaml -state\n")
	}
	flag.Parse()

	cfg := Default()
	if *configPath != "" {
		loaded, err := Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "channels":
			cfg.Channels = *channels
		case "up":
			cfg.Up.Ratio = *upRatio
		case "down":
			cfg.Down.Ratio = *downRatio
		case "up-k":
			cfg.Up.KernelSize = *upKernel
		case "down-k":
			cfg.Down.KernelSize = *downKernel
		case "fft":
			cfg.Analysis.FFTSize = *fftSize
		case "length":
			cfg.Analysis.Length = *length
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Up.Ratio != cfg.Down.Ratio {
		fmt.Fprintf(os.Stderr, "warning: up ratio %d differs from down ratio %d; output length changes\n",
			cfg.Up.Ratio, cfg.Down.Ratio)
	}

	if err := run(os.Stdout, cfg, *dumpState); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, cfg *Config, dumpState bool) error {
	act, err := newActivation(cfg)
	if err != nil {
		return err
	}

	stages := []kernelInfo{
		{
			name:      "up",
			kernel:    act.Up().Kernel(),
			cutoff:    act.Up().Cutoff(),
			halfWidth: act.Up().HalfWidth(),
		},
		{
			name:      "down",
			kernel:    act.Down().Kernel(),
			cutoff:    act.Down().LowPass().Cutoff(),
			halfWidth: act.Down().LowPass().HalfWidth(),
		},
	}

	if err := printKernels(w, stages, cfg.Analysis.FFTSize); err != nil {
		return err
	}

	if err := printRoundTrip(w, act, cfg); err != nil {
		return err
	}

	if dumpState {
		out, err := yaml.Marshal(act.State())
		if err != nil {
			return fmt.Errorf("failed to encode state: %w", err)
		}

		if _, err := fmt.Fprintf(w, "\n%s", out); err != nil {
			return err
		}
	}

	return nil
}

func newActivation(cfg *Config) (*activation.AntiAlias, error) {
	act, err := activation.NewAntiAlias(cfg.Channels, cfg.Options()...)
	if err != nil {
		return nil, err
	}

	alpha, err := expand(cfg.Alpha, cfg.Channels)
	if err != nil {
		return nil, err
	}

	if alpha != nil {
		if err := act.Activation().Alpha().Set(alpha); err != nil {
			return nil, err
		}
	}

	beta, err := expand(cfg.Beta, cfg.Channels)
	if err != nil {
		return nil, err
	}

	if beta != nil {
		if err := act.Activation().Beta().Set(beta); err != nil {
			return nil, err
		}
	}

	return act, nil
}

type kernelInfo struct {
	name      string
	kernel    []float64
	cutoff    float64
	halfWidth float64
}

func printKernels(w io.Writer, stages []kernelInfo, fftSize int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Stage\tTaps\tCutoff\tHalf Width\tBeta\tDC Gain\t-3 dB\tNyquist [dB]\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if _, err := fmt.Fprintf(tw, "-----\t----\t------\t----------\t----\t-------\t-----\t------------\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, s := range stages {
		resp, err := sinc.FrequencyResponse(s.kernel, fftSize)
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}

		taps := len(s.kernel)
		beta := window.KaiserBeta(window.KaiserAttenuation(taps/2, 4*s.halfWidth))

		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.6f\t%.4f\t%.2f\n",
			s.name,
			taps,
			s.cutoff,
			s.halfWidth,
			beta,
			resp.Magnitude[0],
			resp.CutoffFrequency(-3),
			resp.MagnitudeDB(len(resp.Magnitude)-1),
		); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return tw.Flush()
}

// printRoundTrip runs a sine through the resamplers alone and through the
// full activation and reports the deviation from the input and from the
// activation applied at the original rate.
func printRoundTrip(w io.Writer, act *activation.AntiAlias, cfg *Config) error {
	n := cfg.Analysis.Length
	freq := cfg.Analysis.Frequency
	amp := cfg.Analysis.Amplitude

	x, err := tensor.New(1, cfg.Channels, n)
	if err != nil {
		return err
	}

	for c := range cfg.Channels {
		row := x.Row(0, c)
		for i := range row {
			row[i] = amp * math.Sin(2*math.Pi*freq*float64(i))
		}
	}

	up, err := act.Up().Process(x)
	if err != nil {
		return err
	}

	resampled, err := act.Down().Process(up)
	if err != nil {
		return err
	}

	full, err := act.Process(x)
	if err != nil {
		return err
	}

	direct, err := act.Activation().Process(x)
	if err != nil {
		return err
	}

	guard := min(n/8, 16)

	if _, err := fmt.Fprintf(w, "\nTest sine: f=%.4f amp=%.3f length=%d channels=%d\n", freq, amp, n, cfg.Channels); err != nil {
		return err
	}

	if resampled.Len() != n {
		_, err := fmt.Fprintf(w, "Resample round trip: length %d -> %d\n", n, resampled.Len())
		return err
	}

	rt, err := level.CompareTensors(resampled, x, guard)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Resample round trip: max error %.3e, SNR %.1f dB (interior)\n", rt.MaxAbs, rt.SNR_dB); err != nil {
		return err
	}

	vsDirect, err := level.CompareTensors(full, direct, guard)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Activation vs. direct: max difference %.3e, SNR %.1f dB (interior)\n",
		vsDirect.MaxAbs, vsDirect.SNR_dB); err != nil {
		return err
	}

	st := level.Calculate(full.Data())
	_, err = fmt.Fprintf(w, "Activation output: DC %.4f, RMS %.2f dB, peak %.2f dB\n", st.DC, st.RMS_dB, st.Peak_dB)

	return err
}
