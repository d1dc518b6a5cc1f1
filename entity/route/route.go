// Package route 管理线路上的计划停站序列。
// 车站按位置升序排列，模拟过程中按顺序消费，消费过的车站不再访问。
package route

import (
	"github.com/samber/lo"

	"github.com/tsinghua-fib-lab/marche-sim-oss/utils/config"
)

// Station 线路上的一个计划停站点
type Station struct {
	Name  string  // 车站名（仅用于日志输出）
	S     float64 // 车站沿线路的位置（米）
	Dwell float64 // 停站时间（秒）
}

// Route 线路车站序列
// 功能：维护按位置升序排列的车站及消费进度
type Route struct {
	stations []Station
	next     int // 下一个未消费车站的下标
}

// New 根据配置创建线路
// 功能：将配置中的车站列表转换为运行时线路对象
// 说明：车站顺序在配置验证阶段已确保严格递增
func New(cfg *config.Route) *Route {
	return &Route{
		stations: lo.Map(cfg.Stations, func(s config.Station, _ int) Station {
			return Station{Name: s.Name, S: s.S, Dwell: s.Dwell}
		}),
	}
}

// Next 获取下一个未消费的车站
// 返回：车站与是否存在的标志
func (r *Route) Next() (Station, bool) {
	if r.next >= len(r.stations) {
		return Station{}, false
	}
	return r.stations[r.next], true
}

// Consume 消费当前车站
// 功能：停站结束后将消费进度前移一位
// 说明：所有车站都消费完后调用无效果
func (r *Route) Consume() {
	if r.next < len(r.stations) {
		r.next++
	}
}

// Finished 检查线路是否已全部消费
func (r *Route) Finished() bool {
	return r.next >= len(r.stations)
}

// Len 获取线路车站总数
func (r *Route) Len() int {
	return len(r.stations)
}
