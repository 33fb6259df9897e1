package ecg

import (
	"bufio"
	"fmt"
	"os"
)

// SignalDebugger 定义调理管线的调试记录接口。
// 上下文只依赖这个接口，不依赖具体的文件操作。
type SignalDebugger interface {
	Record(raw, bandpassed, derivative, squared, envelope float64)
	Close()
}

// CsvFileDebugger 是 SignalDebugger 的具体实现。
// 把每个采样点在管线各级的值写成 CSV，供离线绘图比对各级滤波效果。
// 它封装了文件句柄，不向外暴露。
type CsvFileDebugger struct {
	file   *os.File
	writer *bufio.Writer
	rows   int
}

// NewCsvFileDebugger 创建一个新的 CSV 调试器
func NewCsvFileDebugger(filename string) (*CsvFileDebugger, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	w := bufio.NewWriter(f)
	// 写入表头
	if _, err := w.WriteString("Raw,Bandpassed,Derivative,Squared,Envelope\n"); err != nil {
		f.Close()
		return nil, err
	}

	return &CsvFileDebugger{
		file:   f,
		writer: w,
	}, nil
}

// Record 记录单个采样点在管线各级的值
func (d *CsvFileDebugger) Record(raw, bandpassed, derivative, squared, envelope float64) {
	fmt.Fprintf(d.writer, "%f,%f,%f,%f,%f\n", raw, bandpassed, derivative, squared, envelope)

	d.rows++
	// 定期刷新，防止程序异常退出导致数据丢失
	if d.rows%4096 == 0 {
		d.writer.Flush()
	}
}

// Close 关闭文件并刷新缓冲区
func (d *CsvFileDebugger) Close() {
	if d.writer != nil {
		d.writer.Flush()
	}
	if d.file != nil {
		d.file.Close()
	}
}

// NoOpDebugger 是一个空实现，正常分析时使用。
// 这样可以避免在核心代码中写大量的 if debugger != nil check。
type NoOpDebugger struct{}

func (d *NoOpDebugger) Record(raw, bandpassed, derivative, squared, envelope float64) {}
func (d *NoOpDebugger) Close()                                                       {}
