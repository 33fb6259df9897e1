package ecg

import (
	"bytes"
	"testing"
)

// MockSerialPort 模拟串口
type MockSerialPort struct {
	ReadBuffer  *bytes.Buffer
	WriteBuffer *bytes.Buffer
	Closed      bool
}

func NewMockSerialPort() *MockSerialPort {
	return &MockSerialPort{
		ReadBuffer:  new(bytes.Buffer),
		WriteBuffer: new(bytes.Buffer),
	}
}

func (m *MockSerialPort) Read(p []byte) (n int, err error) {
	return m.ReadBuffer.Read(p)
}

func (m *MockSerialPort) Write(p []byte) (n int, err error) {
	return m.WriteBuffer.Write(p)
}

func (m *MockSerialPort) Close() error {
	m.Closed = true
	return nil
}

func TestSerialCapture(t *testing.T) {
	mockPort := NewMockSerialPort()
	reader := &SerialSampleReader{conn: mockPort}

	// 模拟设备输出：采样值逐行 ASCII
	mockPort.ReadBuffer.WriteString("0.50\n-0.25\n1.00\n0.75\n")

	samples, err := reader.Capture(3)
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}
	want := []float64{0.50, -0.25, 1.00}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, samples[i], want[i])
		}
	}

	// 验证发出了 START 命令
	sent := mockPort.WriteBuffer.String()
	if len(sent) < 6 || sent[:6] != "START\n" {
		t.Errorf("expected START command, got %q", sent)
	}
}

func TestSerialCapture_SkipsGarbageLines(t *testing.T) {
	mockPort := NewMockSerialPort()
	reader := &SerialSampleReader{conn: mockPort}

	// 上电残留和状态行应被跳过
	mockPort.ReadBuffer.WriteString("BOOT OK\n0.1\n\nstatus:ready\n0.2\n")

	samples, err := reader.Capture(2)
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if len(samples) != 2 || samples[0] != 0.1 || samples[1] != 0.2 {
		t.Errorf("samples = %v, want [0.1 0.2]", samples)
	}
}

func TestSerialCapture_ShortStream(t *testing.T) {
	mockPort := NewMockSerialPort()
	reader := &SerialSampleReader{conn: mockPort}

	// 设备提前断流：返回已采到的部分
	mockPort.ReadBuffer.WriteString("0.1\n0.2\n")

	samples, err := reader.Capture(100)
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if len(samples) != 2 {
		t.Errorf("got %d samples, want 2", len(samples))
	}
}

func TestSerialCapture_NoData(t *testing.T) {
	mockPort := NewMockSerialPort()
	reader := &SerialSampleReader{conn: mockPort}

	mockPort.ReadBuffer.WriteString("no numbers here\n")

	if _, err := reader.Capture(10); err == nil {
		t.Error("expected error when device sends no samples")
	}
}

func TestSerialCapture_NotOpen(t *testing.T) {
	reader := NewSerialSampleReader("/dev/null", 115200)

	if _, err := reader.Capture(10); err == nil {
		t.Error("expected error when port is not open")
	}
}

func TestSerialClose(t *testing.T) {
	mockPort := NewMockSerialPort()
	reader := &SerialSampleReader{conn: mockPort}

	if err := reader.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !mockPort.Closed {
		t.Error("expected port to be closed")
	}
}
