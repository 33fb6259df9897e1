package ecg

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestApplyGain(t *testing.T) {
	x := []float64{1, -2, 0.5}
	ApplyGain(x, 10)

	want := []float64{10, -20, 5}
	for i := range x {
		if x[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, x[i], want[i])
		}
	}

	// nil / 空输入不应 panic
	ApplyGain(nil, 10)
	ApplyGain([]float64{}, 10)
}

func TestRemoveDC(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	RemoveDC(x)

	// 均值 2.5 被减掉，结果均值为 0
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	if !almostEqual(sum, 0, 1e-12) {
		t.Errorf("mean after RemoveDC = %v, want 0", sum/4)
	}
	if x[0] != -1.5 || x[3] != 1.5 {
		t.Errorf("unexpected values: %v", x)
	}

	RemoveDC(nil)
}

func TestMovingAverage_ShrinkingWindow(t *testing.T) {
	// 开头窗口收缩：前 win-1 个输出是更少采样的均值
	x := []float64{2, 4, 6, 8}
	y := make([]float64, len(x))
	MovingAverage(x, y, 3)

	want := []float64{2, 3, 4, 6} // {2}, {2,4}, {2,4,6}, {4,6,8}
	for i := range y {
		if !almostEqual(y[i], want[i], 1e-12) {
			t.Errorf("index %d: got %v, want %v", i, y[i], want[i])
		}
	}
}

func TestMovingAverage_ZeroWindowIsIdentity(t *testing.T) {
	x := []float64{1, -1, 2, -2}
	y := make([]float64, len(x))
	MovingAverage(x, y, 0)

	for i := range y {
		if y[i] != x[i] {
			t.Errorf("win=0 should be identity, index %d: got %v, want %v", i, y[i], x[i])
		}
	}
}

func TestMovingAverage_MatchesNaiveSum(t *testing.T) {
	// 滑动求和实现必须和逐点重算的朴素实现一致
	sim := NewECGSim(500, 75, 0.02)
	x := sim.Generate(400)
	y := make([]float64, len(x))
	win := 37
	MovingAverage(x, y, win)

	for i := range x {
		lo := i - win + 1
		if lo < 0 {
			lo = 0
		}
		sum := 0.0
		for j := lo; j <= i; j++ {
			sum += x[j]
		}
		want := sum / float64(i-lo+1)
		if !almostEqual(y[i], want, 1e-9) {
			t.Fatalf("index %d: got %v, want %v", i, y[i], want)
		}
	}
}

func TestHighpassMA(t *testing.T) {
	x := []float64{2, 4, 6, 8}
	y := make([]float64, len(x))
	ma := make([]float64, len(x))

	HighpassMA(x, y, 3)
	MovingAverage(x, ma, 3)

	// y = x - MA(x)
	for i := range y {
		if !almostEqual(y[i], x[i]-ma[i], 1e-12) {
			t.Errorf("index %d: got %v, want %v", i, y[i], x[i]-ma[i])
		}
	}

	// 常量信号的高通输出为 0
	c := []float64{5, 5, 5, 5, 5}
	yc := make([]float64, len(c))
	HighpassMA(c, yc, 2)
	for i, v := range yc {
		if !almostEqual(v, 0, 1e-12) {
			t.Errorf("constant input index %d: got %v, want 0", i, v)
		}
	}
}

func TestDerivative1(t *testing.T) {
	x := []float64{1, 3, 2, 2}
	y := make([]float64, len(x))
	Derivative1(x, y)

	want := []float64{0, 2, -1, 0}
	for i := range y {
		if y[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, y[i], want[i])
		}
	}
}

func TestSquare(t *testing.T) {
	x := []float64{-2, 0, 3}
	y := make([]float64, len(x))
	Square(x, y)

	want := []float64{4, 0, 9}
	for i := range y {
		if y[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, y[i], want[i])
		}
	}
}
