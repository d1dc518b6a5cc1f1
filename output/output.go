// Package output 收集并导出仿真轨迹。
// 轨迹是一个只追加的采样序列，记录一旦写入不再修改；
// 序列化（CSV、SVG）只读取采样序列，与数值核心完全解耦。
package output

import (
	"bufio"
	"fmt"
	"io"
)

// Sample 一条轨迹采样记录
// 功能：记录单个时间步的车辆状态快照
type Sample struct {
	T float64 // 时间（秒）
	S float64 // 距离（米）
	V float64 // 速度（米/秒）
}

// Log 轨迹采样日志
// 功能：按时间顺序保存全部采样记录
type Log struct {
	Samples []Sample
}

// Append 追加一条采样记录
func (l *Log) Append(s Sample) {
	l.Samples = append(l.Samples, s)
}

// Len 获取采样记录条数
func (l *Log) Len() int {
	return len(l.Samples)
}

// WriteCSV 将轨迹写出为逗号分隔文本
// 功能：每行输出一条记录，格式为"距离, 速度"，保留两位小数
// 参数：w-输出目标
// 返回：写出过程中的IO错误
func (l *Log) WriteCSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, s := range l.Samples {
		if _, err := fmt.Fprintf(bw, "%.2f, %.2f\n", s.S, s.V); err != nil {
			return fmt.Errorf("writing trajectory: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing trajectory: %w", err)
	}
	return nil
}
