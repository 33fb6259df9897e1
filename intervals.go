package ecg

// ComputeIntervals 把相邻 R 峰对转换为 RR 间期 (秒)。
// 只接受落在 [MinRRSec, MaxRRSec] 内的值。范围之外说明上游漏检或误检，
// 这样的间期进入统计只会污染心率。结果达到容量即停止。
func ComputeIntervals(peaks *Peaks, samplingRateHz int, cfg *Config, intervals *Intervals) {
	if peaks == nil || intervals == nil || samplingRateHz <= 0 {
		return
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	fs := float64(samplingRateHz)

	for k := 0; k+1 < len(peaks.R); k++ {
		rr := float64(peaks.R[k+1]-peaks.R[k]) / fs

		if rr < cfg.Interval.MinRRSec || rr > cfg.Interval.MaxRRSec {
			continue
		}

		intervals.RR = append(intervals.RR, rr)
		if len(intervals.RR) == cap(intervals.RR) {
			break
		}
	}
}

// MeanRR 返回已接受间期的算术平均 (秒)。空列表返回 0。
func MeanRR(intervals *Intervals) float64 {
	if intervals == nil || len(intervals.RR) == 0 {
		return 0
	}

	sum := 0.0
	for _, rr := range intervals.RR {
		sum += rr
	}

	return sum / float64(len(intervals.RR))
}

// HeartRateBPM 由平均 RR 间期换算平均心率 (次/分)。
// 没有可用间期时返回 0。
func HeartRateBPM(intervals *Intervals) float64 {
	mean := MeanRR(intervals)
	if mean == 0 {
		return 0
	}

	return 60.0 / mean
}
