package ecg

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// SpectrumAnalyzer 用于频谱分析和导联质量检查
type SpectrumAnalyzer struct {
	SampleRate float64
	FFTSize    int
	Window     []float64
}

// NewSpectrumAnalyzer 创建新的频谱分析器
func NewSpectrumAnalyzer(sampleRate float64, fftSize int) *SpectrumAnalyzer {
	// 创建汉宁窗 (Hanning Window)
	// 公式: 0.5 * (1 - cos(2*PI*n / (N-1)))
	window := make([]float64, fftSize)
	for i := 0; i < fftSize; i++ {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(fftSize-1)))
	}

	return &SpectrumAnalyzer{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		Window:     window,
	}
}

// magnitudes 计算前 FFTSize 个采样的幅度谱 (只取正频率一半)
func (sa *SpectrumAnalyzer) magnitudes(samples []float64) []float64 {
	if len(samples) < sa.FFTSize {
		return nil
	}

	// 应用窗函数后执行 FFT
	input := make([]complex128, sa.FFTSize)
	for i := 0; i < sa.FFTSize; i++ {
		input[i] = complex(samples[i]*sa.Window[i], 0)
	}

	spectrum := fft.FFT(input)

	mags := make([]float64, len(spectrum)/2)
	for i := range mags {
		mags[i] = cmplx.Abs(spectrum[i])
	}

	return mags
}

// FindDominantFrequency 计算信号在 [minFreq, maxFreq] 内的主频。
// 返回主频 (Hz) 和对应的幅度；采样不足一个 FFT 块时返回 (0, 0)。
func (sa *SpectrumAnalyzer) FindDominantFrequency(samples []float64, minFreq, maxFreq float64) (float64, float64) {
	mags := sa.magnitudes(samples)
	if mags == nil {
		return 0, 0
	}

	binWidth := sa.SampleRate / float64(sa.FFTSize)

	startIndex := int(minFreq / binWidth)
	endIndex := int(maxFreq / binWidth)

	if startIndex < 0 {
		startIndex = 0
	}
	if endIndex > len(mags) {
		endIndex = len(mags)
	}

	maxMag := 0.0
	maxIndex := 0
	for i := startIndex; i < endIndex; i++ {
		if mags[i] > maxMag {
			maxMag = mags[i]
			maxIndex = i
		}
	}

	// 抛物线插值 (Parabolic Interpolation)
	// 利用峰值及其左右相邻点来估算真实的峰值位置
	// p = 0.5 * (alpha - gamma) / (alpha - 2*beta + gamma)
	var freq float64
	if maxIndex > 0 && maxIndex < len(mags)-1 {
		alpha := mags[maxIndex-1]
		beta := mags[maxIndex]
		gamma := mags[maxIndex+1]

		// 防止除零
		denom := alpha - 2*beta + gamma
		if denom != 0 {
			p := 0.5 * (alpha - gamma) / denom
			freq = (float64(maxIndex) + p) * binWidth
		} else {
			freq = float64(maxIndex) * binWidth
		}
	} else {
		freq = float64(maxIndex) * binWidth
	}

	return freq, maxMag
}

// MainsInterferenceRatio 计算 [lowHz, hiHz] 工频带内的幅度占
// 全部交流成分幅度的比例 (0.0 - 1.0)。
// 比例偏高说明导联被 50/60Hz 电网干扰污染，检测结果可信度下降。
// 采样不足一个 FFT 块时返回 0。
func (sa *SpectrumAnalyzer) MainsInterferenceRatio(samples []float64, lowHz, hiHz float64) float64 {
	mags := sa.magnitudes(samples)
	if mags == nil {
		return 0
	}

	binWidth := sa.SampleRate / float64(sa.FFTSize)

	startIndex := int(lowHz / binWidth)
	endIndex := int(hiHz/binWidth) + 1

	if startIndex < 1 {
		startIndex = 1
	}
	if endIndex > len(mags) {
		endIndex = len(mags)
	}

	// 跳过 DC bin，基线偏置不算干扰
	total := 0.0
	for _, m := range mags[1:] {
		total += m
	}
	if total == 0 {
		return 0
	}

	band := 0.0
	for i := startIndex; i < endIndex; i++ {
		band += mags[i]
	}

	return band / total
}
