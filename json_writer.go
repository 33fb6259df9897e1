package ecg

import (
	"bufio"
	"fmt"
	"os"
)

// WriteJSON 把检测结果序列化为 JSON 文档：
//
//	{
//	  "peaks":     { "R":  [idx, ...] },
//	  "intervals": { "RR": [x.xx, ...] }
//	}
//
// RR 值固定保留 2 位小数。目标文件无法创建时返回错误。
func WriteJSON(filename string, peaks *Peaks, intervals *Intervals) error {
	if peaks == nil || intervals == nil {
		return fmt.Errorf("%w: peaks/intervals", ErrNull)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open json: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	w.WriteString("{\n")
	w.WriteString("  \"peaks\": {\n")
	w.WriteString("    \"R\": [")
	for i, idx := range peaks.R {
		if i > 0 {
			w.WriteString(", ")
		}
		fmt.Fprintf(w, "%d", idx)
	}
	w.WriteString("]\n  },\n")

	w.WriteString("  \"intervals\": {\n")
	w.WriteString("    \"RR\": [")
	for i, rr := range intervals.RR {
		if i > 0 {
			w.WriteString(", ")
		}
		fmt.Fprintf(w, "%.2f", rr)
	}
	w.WriteString("]\n  }\n")
	w.WriteString("}\n")

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write json: %w", err)
	}

	return nil
}
