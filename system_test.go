package ecg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// 把模拟器输出写成 CSV 文件：表头行 + 每行一条导联 (首字段为导联名)
func writeSimCSV(t *testing.T, samples []float64) string {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("lead")
	for i := range samples {
		fmt.Fprintf(&sb, ",s%d", i)
	}
	sb.WriteString("\nI")
	for _, v := range samples {
		fmt.Fprintf(&sb, ",%.6f", v)
	}
	sb.WriteString("\n")

	path := filepath.Join(t.TempDir(), "sim.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

// 端到端：CSV 载入 -> 质量检查 -> 检测 -> JSON 输出
func TestECGSystem_EndToEnd(t *testing.T) {
	const fs = 500.0
	sim := NewECGSim(fs, 60, 0.01)
	samples := sim.Generate(10000) // 20 秒
	csvPath := writeSimCSV(t, samples)

	params := DefaultParams()
	params.Leads = 1
	params.Gain = 1.0

	sys, err := NewECGSystem(params, nil)
	if err != nil {
		t.Fatalf("NewECGSystem: %v", err)
	}
	defer sys.Close()

	if err := sys.LoadCSV(csvPath); err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}

	ratio, ok := sys.CheckQuality(0)
	if !ok {
		t.Errorf("clean signal flagged as polluted, ratio = %v", ratio)
	}

	if err := sys.Analyze(0); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	nPeaks := len(sys.Peaks().R)
	if nPeaks < 18 || nPeaks > 21 {
		t.Errorf("60 BPM x 20s: detected %d peaks, want 18-21", nPeaks)
	}

	bpm := sys.HeartRateBPM()
	if bpm < 58 || bpm > 62 {
		t.Errorf("heart rate = %.2f BPM, want 60 +/- 2", bpm)
	}

	outPath := filepath.Join(t.TempDir(), "result.json")
	if err := sys.WriteResults(outPath); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	var doc struct {
		Peaks struct {
			R []int `json:"R"`
		} `json:"peaks"`
		Intervals struct {
			RR []float64 `json:"RR"`
		} `json:"intervals"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if len(doc.Peaks.R) != nPeaks {
		t.Errorf("serialized %d peaks, want %d", len(doc.Peaks.R), nPeaks)
	}
	if len(doc.Intervals.RR) != len(sys.Intervals().RR) {
		t.Errorf("serialized %d intervals, want %d", len(doc.Intervals.RR), len(sys.Intervals().RR))
	}
}

func TestECGSystem_AnalyzeWithoutData(t *testing.T) {
	sys, err := NewECGSystem(nil, nil)
	if err != nil {
		t.Fatalf("NewECGSystem: %v", err)
	}
	defer sys.Close()

	if err := sys.Analyze(0); err == nil {
		t.Error("expected error when no signal loaded")
	}
}

func TestECGSystem_DebugCSVTap(t *testing.T) {
	const fs = 500.0
	sim := NewECGSim(fs, 72, 0)
	samples := sim.Generate(3000)
	csvPath := writeSimCSV(t, samples)

	params := DefaultParams()
	params.Leads = 1
	params.Gain = 1.0

	sys, err := NewECGSystem(params, nil)
	if err != nil {
		t.Fatalf("NewECGSystem: %v", err)
	}
	defer sys.Close()

	debugPath := filepath.Join(t.TempDir(), "debug.csv")
	if err := sys.EnableDebugCSV(debugPath); err != nil {
		t.Fatalf("EnableDebugCSV: %v", err)
	}

	if err := sys.LoadCSV(csvPath); err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if err := sys.Analyze(0); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// Close 之后文件应落盘且行数 = 表头 + 采样数
	sys.Close()

	raw, err := os.ReadFile(debugPath)
	if err != nil {
		t.Fatalf("read debug csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3000+1 {
		t.Errorf("debug csv has %d lines, want %d", len(lines), 3000+1)
	}
	if !strings.HasPrefix(lines[0], "Raw,") {
		t.Errorf("unexpected header: %q", lines[0])
	}
}
