package main

import (
	"ecg"
	"flag"
	"fmt"
	"os"
)

// 退出码约定 (脚本侧靠退出码区分失败环节，不用解析输出)
const (
	exitOK        = 0
	exitUsage     = 1
	exitIngest    = 2
	exitSerialize = 3
	exitContext   = 4
	exitLead      = 5
	exitAnalyze   = 6
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <input_csv> <output_json>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s -serial <port> [flags] <output_json>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	// 1. 解析命令行参数
	leadIdx := flag.Int("lead", 1, "Lead index to analyze (default: lead II)")
	debugCSV := flag.String("debug-csv", "", "Write per-stage signal values to a CSV file")
	serialPort := flag.String("serial", "", "Capture from a serial ECG front end instead of a CSV file")
	baudRate := flag.Int("baud", 115200, "Serial baud rate")
	seconds := flag.Int("seconds", 10, "Serial capture duration in seconds")
	quality := flag.Bool("quality", false, "Check the lead for mains interference before analysis")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	wantArgs := 2
	if *serialPort != "" {
		wantArgs = 1
	}
	if len(args) != wantArgs {
		usage()
		os.Exit(exitUsage)
	}
	outputPath := args[len(args)-1]

	// 2. 初始化系统 (固定采用标准 12 导联 500Hz 配置)
	params := ecg.DefaultParams()
	system, err := ecg.NewECGSystem(params, ecg.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: context creation failed: %v\n", err)
		os.Exit(exitContext)
	}
	defer system.Close()

	// 3. 载入信号
	if *serialPort != "" {
		// 串口采集只有一条导联，固定分析导联 0
		*leadIdx = 0
		nSamples := *seconds * params.SamplingRateHz
		if err := system.CaptureSerial(*serialPort, *baudRate, nSamples); err != nil {
			fmt.Fprintf(os.Stderr, "Error: serial capture failed: %v\n", err)
			os.Exit(exitIngest)
		}
	} else {
		if err := system.LoadCSV(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: CSV read failed: %v\n", err)
			os.Exit(exitIngest)
		}
	}

	if *leadIdx < 0 || *leadIdx >= params.Leads {
		fmt.Fprintf(os.Stderr, "Error: invalid lead index %d\n", *leadIdx)
		os.Exit(exitLead)
	}

	// 4. 可选的导联质量检查
	if *quality {
		ratio, ok := system.CheckQuality(*leadIdx)
		if !ok {
			fmt.Printf("Warning: lead %d mains interference ratio %.2f, results may be unreliable\n", *leadIdx, ratio)
		}
	}

	// 5. 分析
	if *debugCSV != "" {
		if err := system.EnableDebugCSV(*debugCSV); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot create debug CSV: %v\n", err)
			os.Exit(exitAnalyze)
		}
	}

	if err := system.Analyze(*leadIdx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: analysis failed: %v\n", err)
		os.Exit(exitAnalyze)
	}

	fmt.Printf("%d R peaks detected.\n", len(system.Peaks().R))
	if bpm := system.HeartRateBPM(); bpm > 0 {
		fmt.Printf("Mean heart rate: %.1f BPM\n", bpm)
	}

	// 6. 输出结果
	if err := system.WriteResults(outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: JSON write failed: %v\n", err)
		os.Exit(exitSerialize)
	}

	fmt.Printf("Analysis complete. Results saved to %s\n", outputPath)
	os.Exit(exitOK)
}
