package vehicle

import (
	"math"

	"github.com/tsinghua-fib-lab/marche-sim-oss/utils/config"
)

// Obstruction 前方障碍
// 功能：描述车辆前方需要响应的障碍，可以是真实前车或车站处的虚拟停车线
type Obstruction struct {
	S float64 // 障碍位置（米）
	V float64 // 障碍速度（米/秒），虚拟停车线为0
}

// runtime 车辆运行时数据结构
// 功能：记录车辆在模拟过程中的运行时状态
// 说明：该数据结构需要可以被直接复制，不应产生浅拷贝带来的副作用
type runtime struct {
	S float64 // 位置（米），沿线路单调不减
	V float64 // 速度（米/秒），不为负
	A float64 // 加速度（米/秒²）
}

// Vehicle 跟随车辆实体
// 功能：管理车辆的运动状态，提供单步积分更新
// 说明：位置与速度只能通过Update/Hold推进，外部只读
type Vehicle struct {
	attr       config.VehicleAttr
	controller *controller
	runtime    runtime
}

// New 创建新的车辆实体
// 功能：根据车辆属性与初始状态创建车辆
// 参数：attr-车辆属性配置（已验证），initS-初始位置，initV-初始速度
func New(attr config.VehicleAttr, initS, initV float64) *Vehicle {
	v := &Vehicle{
		attr: attr,
		runtime: runtime{
			S: initS,
			V: math.Max(0, initV),
		},
	}
	v.controller = newController(v, attr)
	return v
}

// Update 车辆状态单步更新
// 功能：计算加速度并用显式欧拉法推进位置与速度
// 参数：dt-时间步长（秒），ahead-前方障碍，nil表示自由流
// 算法说明：
// 1. 自由流时调用freeDrive，否则以与障碍的距离和障碍速度调用follow
// 2. 速度更新：v' = max(0, v + a*dt)，速度不为负
// 3. 位置更新：s' = s + max(0, v*dt + 0.5*a*dt²)，位置单调不减
func (v *Vehicle) Update(dt float64, ahead *Obstruction) {
	l := v.controller
	l.prepare(v.runtime.V, dt)

	var acc float64
	if ahead == nil {
		acc = l.freeDrive()
	} else {
		acc = l.follow(ahead.V, ahead.S-v.runtime.S)
	}

	ds := math.Max(0, v.runtime.V*dt+0.5*acc*dt*dt)
	v.runtime.V = math.Max(0, v.runtime.V+acc*dt)
	v.runtime.S += ds
	v.runtime.A = acc
}

// Hold 车辆停站保持
// 功能：停站期间冻结位置，速度与加速度置零
// 说明：停站时只有时钟前进，车辆状态不变
func (v *Vehicle) Hold() {
	v.runtime.V = 0
	v.runtime.A = 0
}

// S 获取当前位置（米）
func (v *Vehicle) S() float64 {
	return v.runtime.S
}

// V 获取当前速度（米/秒）
func (v *Vehicle) V() float64 {
	return v.runtime.V
}

// A 获取当前加速度（米/秒²）
func (v *Vehicle) A() float64 {
	return v.runtime.A
}

// MinGap 获取车辆的最小车距s0（米）
func (v *Vehicle) MinGap() float64 {
	return v.attr.MinGap
}
