package ecg

// 滤波原语：单遍因果变换，O(n) 时间 O(1) 额外空间，无内部分配。
// 所有函数对 nil 或空切片直接返回 (no-op)。
// 带输出参数的函数要求 len(y) >= len(x) 且 x、y 不得重叠
// (别名会破坏滑动求和的读写顺序)。

// ApplyGain 对信号施加乘性增益 (in-place)
func ApplyGain(x []float64, gain float64) {
	for i := range x {
		x[i] *= gain
	}
}

// RemoveDC 去除直流偏置：减去全信号的算术平均 (in-place)
func RemoveDC(x []float64) {
	if len(x) == 0 {
		return
	}

	sum := 0.0
	for _, v := range x {
		sum += v
	}
	mean := sum / float64(len(x))

	for i := range x {
		x[i] -= mean
	}
}

// MovingAverage 因果滑动平均：y[i] 为截止到 i 的最近 win 个采样的均值。
// 开头不足 win 个时窗口收缩 (前 win-1 个输出是更少采样的均值)。
// 滑动求和实现：进一个加一个，出窗减一个，每点 O(1)。
// win <= 0 视为 1 (恒等变换)。
func MovingAverage(x, y []float64, win int) {
	if len(x) == 0 || y == nil {
		return
	}
	if win <= 0 {
		win = 1
	}

	sum := 0.0
	w := 0

	for i, v := range x {
		sum += v
		w++

		if w > win {
			sum -= x[i-win]
			w--
		}

		y[i] = sum / float64(w)
	}
}

// HighpassMA 用滑动平均做简易高通：y = x - MA(x, win)。
// 去除缓慢的基线漂移，保留 QRS 这类快速成分。
func HighpassMA(x, y []float64, win int) {
	if len(x) == 0 || y == nil {
		return
	}
	if win <= 0 {
		win = 1
	}

	sum := 0.0
	w := 0

	for i, v := range x {
		sum += v
		w++

		if w > win {
			sum -= x[i-win]
			w--
		}

		y[i] = v - sum/float64(w)
	}
}

// Derivative1 一阶离散差分：y[0]=0, y[i] = x[i] - x[i-1]
func Derivative1(x, y []float64) {
	if len(x) == 0 || y == nil {
		return
	}

	y[0] = 0.0
	for i := 1; i < len(x); i++ {
		y[i] = x[i] - x[i-1]
	}
}

// Square 逐点平方 (能量整流)：y[i] = x[i]^2
func Square(x, y []float64) {
	if len(x) == 0 || y == nil {
		return
	}

	for i, v := range x {
		y[i] = v * v
	}
}

// MWI 滑窗积分 (Moving Window Integration)。
// 算法与 MovingAverage 完全一致，只是作用在平方信号上，
// 名字表明它在管线中的角色而不是另一种算法。
func MWI(x, y []float64, win int) {
	MovingAverage(x, y, win)
}
