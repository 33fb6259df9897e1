package ecg

import "fmt"

// Analyze 对单个导联执行完整分析：信号调理 -> 自适应 R 峰检测 -> RR 间期。
// signal 是该导联的原始采样 (分析期间只读)；检测结果写入 peaks，
// intervals 可以为 nil (跳过间期计算)。
// 前置条件不满足时立即返回对应错误，不会部分修改输出；
// 前置条件通过后检测本身不会失败，没有检出心搏是合法结果而不是错误。
func (c *Context) Analyze(signal []float64, leadIdx int, peaks *Peaks, intervals *Intervals) error {
	if c == nil {
		return fmt.Errorf("%w: context", ErrNull)
	}
	if c.closed {
		return ErrClosed
	}
	if signal == nil {
		return fmt.Errorf("%w: signal", ErrNull)
	}
	if peaks == nil {
		return fmt.Errorf("%w: peaks", ErrNull)
	}

	n := len(signal)
	if n == 0 {
		return fmt.Errorf("%w: empty signal", ErrParam)
	}
	if n > c.params.MaxSamples {
		return fmt.Errorf("%w: %d samples exceeds capacity %d", ErrParam, n, c.params.MaxSamples)
	}
	if leadIdx < 0 || leadIdx >= c.params.Leads {
		return fmt.Errorf("%w: lead index %d out of [0,%d)", ErrParam, leadIdx, c.params.Leads)
	}

	envelope := c.conditionSignal(signal)

	peaks.Reset()
	c.detectRPeaks(signal, envelope, peaks)

	if intervals != nil {
		intervals.Reset()
		ComputeIntervals(peaks, c.params.SamplingRateHz, c.cfg, intervals)
	}

	return nil
}

// conditionSignal 执行四级调理级联，把原始导联信号变换为能量包络：
// 带通 (滑动平均高通) -> 一阶微分 -> 平方 -> 滑窗积分。
// 每级写入专属 scratch buffer，无分配；同一输入重复调用结果逐位相同。
func (c *Context) conditionSignal(signal []float64) []float64 {
	n := len(signal)
	fs := c.params.SamplingRateHz

	lpWin := c.cfg.Filter.LowPassWindowMs * fs / 1000
	mwiWin := c.cfg.Filter.MWIWindowMs * fs / 1000

	bandpassed := c.bandpassed[:n]
	derivative := c.derivative[:n]
	squared := c.squared[:n]
	envelope := c.envelope[:n]

	HighpassMA(signal, bandpassed, lpWin)
	Derivative1(bandpassed, derivative)
	Square(derivative, squared)
	MWI(squared, envelope, mwiWin)

	for i := 0; i < n; i++ {
		c.debugger.Record(signal[i], bandpassed[i], derivative[i], squared[i], envelope[i])
	}

	return envelope
}

// detectRPeaks 在包络上扫描 R 峰候选，自适应阈值 + 不应期门控，
// 接受的候选再回到原始信号上精修位置 (Pan-Tompkins 判决规则)。
func (c *Context) detectRPeaks(signal, envelope []float64, peaks *Peaks) {
	n := len(envelope)
	fs := c.params.SamplingRateHz

	refractory := fs * c.cfg.Detector.RefractoryPeriodMs / 1000

	// 包络全局最大值，作为阈值自举的量纲
	maxEnv := 0.0
	for _, v := range envelope {
		if v > maxEnv {
			maxEnv = v
		}
	}

	signalPeak := c.cfg.Detector.ThresholdInitFactor * maxEnv
	noisePeak := c.cfg.Detector.NoisePeakDecay * maxEnv
	threshold := noisePeak + c.cfg.Detector.ThresholdInitFactor*(signalPeak-noisePeak)

	// 调用方给出的初始阈值提示优先 (0 表示完全自适应)
	if c.params.RThresholdHint > 0 {
		threshold = c.params.RThresholdHint
	}

	// 保证第一个真实峰不会被不应期挡掉
	lastR := -refractory

	for i := 1; i <= n-2; i++ {
		// 局部极大判定：左侧严格，右侧非严格。
		// 平顶时取平台的第一个采样 (固定的 tie-break)。
		if !(envelope[i] > envelope[i-1] && envelope[i] >= envelope[i+1]) {
			continue
		}

		// 不应期内的峰按噪声处理
		if i-lastR < refractory {
			noisePeak = (1-c.cfg.Detector.NoisePeakDecay)*noisePeak + c.cfg.Detector.NoisePeakDecay*envelope[i]
			threshold = noisePeak + c.cfg.Detector.ThresholdInitFactor*(signalPeak-noisePeak)
			continue
		}

		// 低于阈值的峰按噪声处理
		if envelope[i] < threshold {
			noisePeak = (1-c.cfg.Detector.NoisePeakDecay)*noisePeak + c.cfg.Detector.NoisePeakDecay*envelope[i]
			threshold = noisePeak + c.cfg.Detector.ThresholdInitFactor*(signalPeak-noisePeak)
			continue
		}

		// 接受为 R 峰候选
		signalPeak = (1-c.cfg.Detector.SignalPeakDecay)*signalPeak + c.cfg.Detector.SignalPeakDecay*envelope[i]
		threshold = noisePeak + c.cfg.Detector.ThresholdInitFactor*(signalPeak-noisePeak)

		// MWI 会让峰值位置滞后于真实 R 波，
		// 在原始信号上以 i 为中心搜索局部最大来精修
		refined := refineRPeak(signal, i, refractory/2)

		peaks.R = append(peaks.R, refined)
		lastR = i

		if len(peaks.R) == cap(peaks.R) {
			break
		}
	}
}

// refineRPeak 在原始信号的 [center-half, center+half] 窗口内
// (裁剪到边界) 找最大值的索引，多个相同值取第一个出现的。
func refineRPeak(signal []float64, center, half int) int {
	lo := center - half
	if lo < 0 {
		lo = 0
	}
	hi := center + half
	if hi > len(signal)-1 {
		hi = len(signal) - 1
	}

	best := lo
	for i := lo + 1; i <= hi; i++ {
		if signal[i] > signal[best] {
			best = i
		}
	}

	return best
}
