package ecg

import "fmt"

// Context 是分析上下文：持有参数的拷贝和四个预分配的 scratch buffer
// (调理管线每级一个)。创建一次可重复用于任意多次分析，
// buffer 每次分析被整体覆写，调用之间不残留状态。
// 不支持并发使用：并行分析请每个 goroutine 各建一个 Context。
type Context struct {
	params Params
	cfg    *Config

	// 调理管线各级输出，容量固定为 params.MaxSamples
	bandpassed []float64
	derivative []float64
	squared    []float64
	envelope   []float64

	debugger SignalDebugger
	closed   bool
}

// NewContext 创建分析上下文。
// params 为 nil 返回 ErrNull；参数值非法返回 ErrParam。
// cfg 为 nil 时使用 DefaultConfig。
// 创建是全有或全无的：失败时不会返回部分初始化的上下文。
func NewContext(params *Params, cfg *Config) (*Context, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: params", ErrNull)
	}
	if params.SamplingRateHz <= 0 {
		return nil, fmt.Errorf("%w: sampling rate %d", ErrParam, params.SamplingRateHz)
	}
	if params.Leads <= 0 {
		return nil, fmt.Errorf("%w: leads %d", ErrParam, params.Leads)
	}
	if params.MaxSamples <= 0 {
		return nil, fmt.Errorf("%w: max samples %d", ErrParam, params.MaxSamples)
	}

	return &Context{
		params:     *params,
		cfg:        cloneOrDefault(cfg),
		bandpassed: make([]float64, params.MaxSamples),
		derivative: make([]float64, params.MaxSamples),
		squared:    make([]float64, params.MaxSamples),
		envelope:   make([]float64, params.MaxSamples),
		debugger:   &NoOpDebugger{},
	}, nil
}

func cloneOrDefault(cfg *Config) *Config {
	if cfg == nil {
		return DefaultConfig()
	}
	c := *cfg
	return &c
}

// Params 返回上下文持有的参数拷贝
func (c *Context) Params() Params {
	return c.params
}

// SetDebugger 挂载信号调试器，记录调理管线的逐点中间值。
// 传 nil 恢复为 NoOpDebugger。
func (c *Context) SetDebugger(d SignalDebugger) {
	if d == nil {
		d = &NoOpDebugger{}
	}
	c.debugger = d
}

// Close 释放上下文持有的 buffer。之后任何分析调用返回 ErrClosed。
// 对已关闭的上下文重复调用是 no-op。
func (c *Context) Close() error {
	if c == nil || c.closed {
		return nil
	}

	c.closed = true
	c.bandpassed = nil
	c.derivative = nil
	c.squared = nil
	c.envelope = nil

	return nil
}
