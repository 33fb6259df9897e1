package ecg

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// SampleMatrix 存放从 CSV 读入的多导联采样数据。
// Data 按 [导联][采样点] 排列；SampleCount 是第一条成功解析的
// 导联的采样数，各导联统一按这个长度分析。
type SampleMatrix struct {
	Data        [][]float64
	Leads       int
	SampleCount int
}

// Lead 返回指定导联截断到 SampleCount 的采样切片
func (m *SampleMatrix) Lead(idx int) []float64 {
	if idx < 0 || idx >= m.Leads {
		return nil
	}
	return m.Data[idx][:m.SampleCount]
}

// ReadCSV 读取 ECG 采样文件。
// 格式：第一行是表头 (丢弃)；之后每行一个导联，行内第一个字段是
// 导联名 (丢弃)，其余字段按顺序解析为该导联的采样值。
// 解析失败的字段跳过；每导联最多读 maxSamples 个采样；
// 最多读 leads 行。没有读到任何导联或有效采样时返回错误。
func ReadCSV(filename string, leads, maxSamples int) (*SampleMatrix, error) {
	if leads <= 0 || maxSamples <= 0 {
		return nil, fmt.Errorf("%w: leads %d, max samples %d", ErrParam, leads, maxSamples)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// 一行承载整条导联 (上万个字段)，默认 64KB 不够
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20)

	// 丢弃表头
	if !scanner.Scan() {
		return nil, fmt.Errorf("read csv: empty file")
	}

	data := make([][]float64, 0, leads)
	loadedSamples := -1

	for len(data) < leads && scanner.Scan() {
		fields := strings.Split(scanner.Text(), ",")
		if len(fields) < 2 {
			continue
		}

		// fields[0] 是导联名，跳过
		row := make([]float64, 0, maxSamples)
		for _, field := range fields[1:] {
			if len(row) >= maxSamples {
				break
			}

			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				// 空字段或坏字段，跳过不中断整行
				continue
			}
			row = append(row, v)
		}

		if loadedSamples == -1 {
			loadedSamples = len(row)
		}
		data = append(data, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(data) == 0 || loadedSamples <= 0 {
		return nil, fmt.Errorf("read csv: no leads or samples found")
	}

	// 不足的导联补齐到统一长度，避免越界
	for i := range data {
		for len(data[i]) < loadedSamples {
			data[i] = append(data[i], 0.0)
		}
	}

	return &SampleMatrix{
		Data:        data,
		Leads:       len(data),
		SampleCount: loadedSamples,
	}, nil
}
