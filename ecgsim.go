package ecg

import "math"

// ECGSim 生成近似 ECG 的合成波形 (非临床级)：
// 基线起伏 + 高斯形 P/Q/R/S/T 波 + 可选的确定性噪声。
// 用于测试和基准评估，R 波位置是已知的，可以核对检测结果。
type ECGSim struct {
	fs    float64
	hrBPM float64
	noise float64
	phase float64
}

// NewECGSim 创建合成器。fs 采样率，hrBPM 典型 40-180，noise 0.0-0.05
func NewECGSim(fs, hrBPM, noise float64) *ECGSim {
	return &ECGSim{fs: fs, hrBPM: hrBPM, noise: noise}
}

// Next 返回下一个采样点并推进心动周期
func (s *ECGSim) Next() float64 {
	cycleHz := s.hrBPM / 60.0
	s.phase += cycleHz / s.fs
	if s.phase >= 1.0 {
		s.phase -= 1.0
	}

	t := s.phase // 周期内归一化时间 0..1

	// 缓慢的基线起伏 (呼吸)
	baseline := 0.05 * math.Sin(2*math.Pi*0.33*t)

	// P, QRS, T 各波用高斯近似，R 波在周期的 0.32 处
	p := 0.08 * gauss(t, 0.18, 0.03)
	q := -0.12 * gauss(t, 0.30, 0.01)
	r := 1.00 * gauss(t, 0.32, 0.008)
	sv := -0.25 * gauss(t, 0.35, 0.012)
	tw := 0.25 * gauss(t, 0.60, 0.06)

	// 确定性伪随机噪声，不依赖 rand 方便复现
	n := s.noise * (2*fract(math.Sin(12345.678*t)*9876.543) - 1)

	return baseline + p + q + r + sv + tw + n
}

// Generate 生成 n 个采样点的完整波形
func (s *ECGSim) Generate(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Next()
	}
	return out
}

// RPhase 返回 R 波在心动周期内的归一化位置 (用于核对检测索引)
func (s *ECGSim) RPhase() float64 { return 0.32 }

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}

func fract(x float64) float64 { return x - math.Floor(x) }
