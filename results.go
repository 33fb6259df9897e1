package ecg

// Peaks 存放检测到的波峰采样索引，按波形标签分组。
// 当前管线只产出 R 峰；P/Q/S/T 槽位为后续扩展预留，保持为空。
// 每个切片的容量在创建时固定，检测到容量上限即停止追加。
type Peaks struct {
	R []int // R 峰索引，严格递增
	P []int
	Q []int
	S []int
	T []int
}

// NewPeaks 创建结果集，maxBeats 为每类波峰的容量上限
func NewPeaks(maxBeats int) *Peaks {
	if maxBeats < 0 {
		maxBeats = 0
	}

	return &Peaks{
		R: make([]int, 0, maxBeats),
		P: make([]int, 0, maxBeats),
		Q: make([]int, 0, maxBeats),
		S: make([]int, 0, maxBeats),
		T: make([]int, 0, maxBeats),
	}
}

// Reset 清空所有波峰列表，保留底层容量以便复用
func (p *Peaks) Reset() {
	p.R = p.R[:0]
	p.P = p.P[:0]
	p.Q = p.Q[:0]
	p.S = p.S[:0]
	p.T = p.T[:0]
}

// Intervals 存放相邻 R 峰之间的 RR 间期 (秒)。
// 只保留落在生理合理范围内的值，容量固定。
type Intervals struct {
	RR []float64
}

// NewIntervals 创建间期结果集，maxBeats 为容量上限
func NewIntervals(maxBeats int) *Intervals {
	if maxBeats < 0 {
		maxBeats = 0
	}

	return &Intervals{
		RR: make([]float64, 0, maxBeats),
	}
}

// Reset 清空间期列表，保留底层容量
func (iv *Intervals) Reset() {
	iv.RR = iv.RR[:0]
}
