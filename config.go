package ecg

// 全局默认容量常量 (来自标准 12 导联采集配置)
const (
	// DefaultMaxSamples 单次分析处理的最大采样点数
	DefaultMaxSamples = 10000

	// DefaultLeads 导联数量 (标准 12 导联)
	DefaultLeads = 12

	// DefaultSamplingRate 默认采样率 (Hz)
	DefaultSamplingRate = 500

	// HRMaxBPM 理论最大心率 (BPM)，用于推算心搏容量
	HRMaxBPM = 240
)

// MaxBeats 根据采样容量和采样率计算理论最大心搏数
// 公式: (最大心率 * 信号时长) / 60 + 余量
func MaxBeats(maxSamples, samplingRateHz int) int {
	durationS := maxSamples / samplingRateHz
	return (HRMaxBPM*durationS)/60 + 16
}

// Params 单次分析的不可变参数。
// NewContext 时会被拷贝进上下文，分析期间外部修改不生效。
type Params struct {
	SamplingRateHz int     // 采样率 (Hz)，必须 > 0
	Leads          int     // 导联数量，必须 > 0
	Gain           float64 // 放大增益 (可选)
	RThresholdHint float64 // R 峰检测初始阈值提示 (可选，0 表示完全自适应)
	MaxSamples     int     // 单次分析的最大采样点数，决定 scratch buffer 容量
}

// DefaultParams 返回标准 12 导联 500Hz 采集的默认参数
func DefaultParams() *Params {
	return &Params{
		SamplingRateHz: DefaultSamplingRate,
		Leads:          DefaultLeads,
		Gain:           100.0,
		RThresholdHint: 0.0,
		MaxSamples:     DefaultMaxSamples,
	}
}

// Config 结构体用于集中管理检测管线的所有可调参数和阈值。
// 毫秒级常量在这里命名而不是硬编码在算法里，方便后续调整。
type Config struct {
	// --- 信号调理 (Conditioning Chain) ---
	// 原始信号 -> 带通 -> 微分 -> 平方 -> 滑窗积分，输出能量包络
	Filter struct {
		LowPassWindowMs int // 基线漂移抑制的滑动平均窗口 (毫秒)。130ms 能覆盖典型 QRS 时长 (~70-110ms) 并留余量
		MWIWindowMs     int // 滑窗积分 (MWI) 窗口 (毫秒)。与带通窗口一致取 130ms
	}

	// --- 自适应 R 峰检测 (Pan-Tompkins 阈值规则) ---
	Detector struct {
		RefractoryPeriodMs  int     // 不应期 (毫秒)。270ms 对应约 220 BPM 的生理上限
		ThresholdInitFactor float64 // 初始信号峰值 = 包络最大值 * 此系数 (0.25)
		SignalPeakDecay     float64 // 信号峰值 EMA 学习率 (0.125)
		NoisePeakDecay      float64 // 噪声峰值 EMA 学习率 (0.125)
	}

	// --- RR 间期 ---
	Interval struct {
		MinRRSec float64 // 可接受的最短 RR 间期 (秒)。0.2s，低于视为误检
		MaxRRSec float64 // 可接受的最长 RR 间期 (秒)。2.0s，高于视为漏检
	}

	// --- 频谱质量检查 (SpectrumAnalyzer) ---
	// 用于判断导联是否被工频干扰污染
	Quality struct {
		FFTSize        int     // FFT 点数 (例如 2048)，决定频率分辨率
		MainsBandLowHz float64 // 工频搜索下限 (Hz)，覆盖 50Hz 电网
		MainsBandHiHz  float64 // 工频搜索上限 (Hz)，覆盖 60Hz 电网
		MainsRatioMax  float64 // 工频能量占比上限，超过则认为导联被污染
	}
}

// DefaultConfig 返回当前采用的标准参数组
func DefaultConfig() *Config {
	cfg := &Config{}

	// --- 信号调理 ---
	cfg.Filter.LowPassWindowMs = 130
	cfg.Filter.MWIWindowMs = 130

	// --- R 峰检测 ---
	cfg.Detector.RefractoryPeriodMs = 270
	cfg.Detector.ThresholdInitFactor = 0.25
	cfg.Detector.SignalPeakDecay = 0.125
	cfg.Detector.NoisePeakDecay = 0.125

	// --- RR 间期 ---
	cfg.Interval.MinRRSec = 0.2
	cfg.Interval.MaxRRSec = 2.0

	// --- 频谱质量检查 ---
	cfg.Quality.FFTSize = 2048
	cfg.Quality.MainsBandLowHz = 45.0
	cfg.Quality.MainsBandHiHz = 65.0
	cfg.Quality.MainsRatioMax = 0.5

	return cfg
}
