package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"ecg"
)

// ============================================================================
// 基准测试：合成 ECG -> 检测管线 -> 检出率/RR 误差评分
// ============================================================================

// TestCase 一组合成信号条件
type TestCase struct {
	Name      string
	HRBPM     float64 // 目标心率
	Noise     float64 // 噪声幅度 (信号 R 波幅度约 1.0)
	DurationS int     // 信号时长 (秒)
}

// expectedBeats 估算信号里应有的完整心搏数
func expectedBeats(hrBPM float64, durationS int) int {
	return int(hrBPM / 60.0 * float64(durationS))
}

func runCase(tc TestCase, params *ecg.Params, cfg *ecg.Config) (detected int, rrErrMs float64, elapsed time.Duration, err error) {
	fs := float64(params.SamplingRateHz)
	n := tc.DurationS * params.SamplingRateHz
	if n > params.MaxSamples {
		n = params.MaxSamples
	}

	// 1. 生成合成信号
	sim := ecg.NewECGSim(fs, tc.HRBPM, tc.Noise)
	signal := sim.Generate(n)

	// 2. 运行完整管线
	ctx, err := ecg.NewContext(params, cfg)
	if err != nil {
		return 0, 0, 0, err
	}
	defer ctx.Close()

	maxBeats := ecg.MaxBeats(params.MaxSamples, params.SamplingRateHz)
	peaks := ecg.NewPeaks(maxBeats)
	intervals := ecg.NewIntervals(maxBeats)

	start := time.Now()
	if err := ctx.Analyze(signal, 0, peaks, intervals); err != nil {
		return 0, 0, 0, err
	}
	elapsed = time.Since(start)

	// 3. 评分：RR 间期和理论周期 (60/HR) 的平均偏差
	idealRR := 60.0 / tc.HRBPM
	sumErr := 0.0
	for _, rr := range intervals.RR {
		sumErr += math.Abs(rr - idealRR)
	}
	if len(intervals.RR) > 0 {
		rrErrMs = sumErr / float64(len(intervals.RR)) * 1000.0
	}

	return len(peaks.R), rrErrMs, elapsed, nil
}

func main() {
	fmt.Println("Starting ECG Detector Benchmark Suite...")
	fmt.Println("========================================")

	params := ecg.DefaultParams()
	cfg := ecg.DefaultConfig()

	testCases := []TestCase{
		{Name: "Rest (clean)", HRBPM: 60, Noise: 0.0, DurationS: 20},
		{Name: "Rest (noisy)", HRBPM: 60, Noise: 0.05, DurationS: 20},
		{Name: "Walk (clean)", HRBPM: 90, Noise: 0.0, DurationS: 20},
		{Name: "Walk (noisy)", HRBPM: 90, Noise: 0.05, DurationS: 20},
		{Name: "Run (clean)", HRBPM: 150, Noise: 0.0, DurationS: 20},
		{Name: "Run (noisy)", HRBPM: 150, Noise: 0.05, DurationS: 20},
		{Name: "Brady (clean)", HRBPM: 40, Noise: 0.0, DurationS: 20},
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CASE\tHR(BPM)\tNOISE\tEXPECTED\tDETECTED\tRR-ERR(ms)\tTIME(ms)\tSTATUS")
	fmt.Fprintln(w, "----\t-------\t-----\t--------\t--------\t----------\t--------\t------")

	for _, tc := range testCases {
		detected, rrErrMs, elapsed, err := runCase(tc, params, cfg)
		if err != nil {
			fmt.Fprintf(w, "%s\t%.0f\t%.2f\t-\t-\t-\t-\tERROR: %v\n", tc.Name, tc.HRBPM, tc.Noise, err)
			continue
		}

		expected := expectedBeats(tc.HRBPM, tc.DurationS)

		// 允许首尾各差一个心搏
		status := "PASS"
		if detected < expected-1 || detected > expected+1 {
			status = "FAIL"
		}

		fmt.Fprintf(w, "%s\t%.0f\t%.2f\t%d\t%d\t%.1f\t%d\t%s\n",
			tc.Name, tc.HRBPM, tc.Noise, expected, detected, rrErrMs, elapsed.Milliseconds(), status)
	}
	w.Flush()

	fmt.Println("\nBenchmark Complete.")
}
