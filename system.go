package ecg

import (
	"fmt"
)

// ECGSystem 管理一次完整分析的生命周期：
// 数据源 (CSV 文件或串口采集) -> 分析上下文 -> 检测 -> 结果输出。
// 对应的 CLI 在 cmd/ 下，这里不做参数解析和退出码处理。
type ECGSystem struct {
	cfg    *Config
	params Params

	ctx      *Context
	analyzer *SpectrumAnalyzer
	debugger *CsvFileDebugger

	matrix    *SampleMatrix
	peaks     *Peaks
	intervals *Intervals
}

// NewECGSystem 创建系统实例并分配分析上下文。
// params/cfg 为 nil 时使用默认值。
func NewECGSystem(params *Params, cfg *Config) (*ECGSystem, error) {
	if params == nil {
		params = DefaultParams()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	ctx, err := NewContext(params, cfg)
	if err != nil {
		return nil, err
	}

	maxBeats := MaxBeats(params.MaxSamples, params.SamplingRateHz)

	return &ECGSystem{
		cfg:       cfg,
		params:    *params,
		ctx:       ctx,
		analyzer:  NewSpectrumAnalyzer(float64(params.SamplingRateHz), cfg.Quality.FFTSize),
		peaks:     NewPeaks(maxBeats),
		intervals: NewIntervals(maxBeats),
	}, nil
}

// Close 释放上下文和调试器
func (s *ECGSystem) Close() {
	if s.debugger != nil {
		s.debugger.Close()
		s.debugger = nil
	}
	if s.ctx != nil {
		s.ctx.Close()
	}
}

// LoadCSV 从 CSV 文件载入采样矩阵并施加放大增益
func (s *ECGSystem) LoadCSV(path string) error {
	matrix, err := ReadCSV(path, s.params.Leads, s.params.MaxSamples)
	if err != nil {
		return err
	}

	if s.params.Gain > 0 && s.params.Gain != 1.0 {
		for i := 0; i < matrix.Leads; i++ {
			ApplyGain(matrix.Lead(i), s.params.Gain)
		}
	}

	s.matrix = matrix
	fmt.Printf("Loaded %d leads with %d samples.\n", matrix.Leads, matrix.SampleCount)
	return nil
}

// CaptureSerial 从串口 ECG 前端定长采集一条导联 (写入导联 0)。
// 采集到的原始 ADC 值先去直流偏置再施加增益。
func (s *ECGSystem) CaptureSerial(port string, baudRate, nSamples int) error {
	if nSamples <= 0 || nSamples > s.params.MaxSamples {
		return fmt.Errorf("%w: capture size %d", ErrParam, nSamples)
	}

	reader := NewSerialSampleReader(port, baudRate)
	if err := reader.Open(); err != nil {
		return fmt.Errorf("open serial port: %w", err)
	}
	defer reader.Close()

	fmt.Printf("Capturing %d samples from %s...\n", nSamples, port)
	samples, err := reader.Capture(nSamples)
	if err != nil {
		return err
	}

	RemoveDC(samples)
	if s.params.Gain > 0 && s.params.Gain != 1.0 {
		ApplyGain(samples, s.params.Gain)
	}

	s.matrix = &SampleMatrix{
		Data:        [][]float64{samples},
		Leads:       1,
		SampleCount: len(samples),
	}
	fmt.Printf("Captured %d samples.\n", len(samples))
	return nil
}

// EnableDebugCSV 把调理管线各级的逐点值写到 CSV，供离线绘图
func (s *ECGSystem) EnableDebugCSV(path string) error {
	d, err := NewCsvFileDebugger(path)
	if err != nil {
		return err
	}
	s.debugger = d
	s.ctx.SetDebugger(d)
	return nil
}

// CheckQuality 检查导联的工频干扰占比。
// 返回占比和是否可接受；采样不足一个 FFT 块时视为可接受。
func (s *ECGSystem) CheckQuality(leadIdx int) (float64, bool) {
	if s.matrix == nil {
		return 0, true
	}
	lead := s.matrix.Lead(leadIdx)
	if lead == nil || len(lead) < s.cfg.Quality.FFTSize {
		return 0, true
	}

	ratio := s.analyzer.MainsInterferenceRatio(lead, s.cfg.Quality.MainsBandLowHz, s.cfg.Quality.MainsBandHiHz)
	return ratio, ratio <= s.cfg.Quality.MainsRatioMax
}

// Analyze 对指定导联运行检测管线
func (s *ECGSystem) Analyze(leadIdx int) error {
	if s.matrix == nil {
		return fmt.Errorf("%w: no signal loaded", ErrNull)
	}

	lead := s.matrix.Lead(leadIdx)
	if lead == nil {
		return fmt.Errorf("%w: lead index %d", ErrParam, leadIdx)
	}

	return s.ctx.Analyze(lead, leadIdx, s.peaks, s.intervals)
}

// WriteResults 序列化检测结果
func (s *ECGSystem) WriteResults(path string) error {
	return WriteJSON(path, s.peaks, s.intervals)
}

// Peaks 返回最近一次分析的波峰结果
func (s *ECGSystem) Peaks() *Peaks { return s.peaks }

// Intervals 返回最近一次分析的间期结果
func (s *ECGSystem) Intervals() *Intervals { return s.intervals }

// HeartRateBPM 返回最近一次分析的平均心率
func (s *ECGSystem) HeartRateBPM() float64 { return HeartRateBPM(s.intervals) }
