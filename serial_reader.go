package ecg

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tarm/serial"
)

// SerialPort 定义串口操作接口，方便测试 Mock
type SerialPort interface {
	io.ReadWriteCloser
}

// SerialSampleReader 处理与串口 ECG 前端的通信。
// 协议：发送 "START\n" 后设备按采样顺序逐行输出 ASCII 电压值，
// "STOP\n" 停止输出。采集是定长的 (采满即停)，不是持续流式服务。
type SerialSampleReader struct {
	Port     string
	BaudRate int
	conn     SerialPort
}

// NewSerialSampleReader 创建串口采样读取器
func NewSerialSampleReader(port string, baudRate int) *SerialSampleReader {
	return &SerialSampleReader{
		Port:     port,
		BaudRate: baudRate,
	}
}

// Open 打开串口连接
func (r *SerialSampleReader) Open() error {
	config := &serial.Config{
		Name:        r.Port,
		Baud:        r.BaudRate,
		ReadTimeout: time.Millisecond * 500,
	}
	s, err := serial.OpenPort(config)
	if err != nil {
		return err
	}
	r.conn = s
	return nil
}

// Close 关闭串口连接
func (r *SerialSampleReader) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// Capture 采集 nSamples 个采样点。
// 设备输出中无法解析的行直接跳过 (上电残留、状态行等)；
// 流提前结束时返回已采到的数据，一个都没采到则报错。
func (r *SerialSampleReader) Capture(nSamples int) ([]float64, error) {
	if r.conn == nil {
		return nil, fmt.Errorf("connection not open")
	}
	if nSamples <= 0 {
		return nil, fmt.Errorf("%w: capture size %d", ErrParam, nSamples)
	}

	if _, err := r.conn.Write([]byte("START\n")); err != nil {
		return nil, fmt.Errorf("start capture: %w", err)
	}

	samples := make([]float64, 0, nSamples)
	scanner := bufio.NewScanner(r.conn)

	for len(samples) < nSamples && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			continue
		}
		samples = append(samples, v)
	}

	// 停止命令尽力而为：设备可能在采满前已经断开
	_, _ = r.conn.Write([]byte("STOP\n"))

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read capture: %w", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples received from device")
	}

	return samples, nil
}
