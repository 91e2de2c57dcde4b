package modid

import (
	"bufio"
	"fmt"
	"os"
)

// FeatureDebugger 定义调试器接口
// 评估流程只依赖这个接口，不依赖具体的文件操作
type FeatureDebugger interface {
	Record(index int, truth, predicted Label, feature, threshold float64)
	Close()
}

// CsvFeatureDebugger 是 FeatureDebugger 的具体实现
// 它封装了文件句柄，不向外暴露
type CsvFeatureDebugger struct {
	file   *os.File
	writer *bufio.Writer
}

// NewCsvFeatureDebugger 创建一个新的 CSV 调试器
func NewCsvFeatureDebugger(filename string) (*CsvFeatureDebugger, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	w := bufio.NewWriter(f)
	// 写入表头
	if _, err := w.WriteString("Index,Truth,Predicted,Feature,Threshold\n"); err != nil {
		f.Close()
		return nil, err
	}

	return &CsvFeatureDebugger{
		file:   f,
		writer: w,
	}, nil
}

// Record 记录单个样本的判决明细
func (d *CsvFeatureDebugger) Record(index int, truth, predicted Label, feature, threshold float64) {
	fmt.Fprintf(d.writer, "%d,%s,%s,%g,%g\n", index, truth, predicted, feature, threshold)
}

// Close 关闭文件并刷新缓冲区
func (d *CsvFeatureDebugger) Close() {
	if d.writer != nil {
		d.writer.Flush()
	}
	if d.file != nil {
		d.file.Close()
	}
}

// NoOpDebugger 是一个空实现，用于生产环境（不记录数据时使用）
// 这样可以避免在核心代码中写大量的 if d.debugger != nil check
type NoOpDebugger struct{}

func (d *NoOpDebugger) Record(index int, truth, predicted Label, feature, threshold float64) {}
func (d *NoOpDebugger) Close()                                                              {}
