package config

// VehicleAttr 车辆动力学属性配置
// 功能：定义跟车模型（IDM）所需的全部车辆参数
// 说明：制动加速度沿用负值约定（负值表示减速），与模型内部计算保持一致
type VehicleAttr struct {
	DesiredSpeed             float64 `yaml:"desired_speed"`                    // 期望速度v0（米/秒）
	Headway                  float64 `yaml:"headway"`                          // 安全车头时距T（秒）
	MaxAcceleration          float64 `yaml:"max_acceleration"`                 // 最大加速度（米/秒²）
	UsualBrakingAcceleration float64 `yaml:"usual_braking_acceleration"`       // 常用（舒适）制动加速度（米/秒²，负值）
	MaxBrakingAcceleration   float64 `yaml:"max_braking_acceleration"`         // 最大制动加速度（米/秒²，负值）
	MinGap                   float64 `yaml:"min_gap"`                          // 最小车距s0（米）
	AccelerationExponent     float64 `yaml:"acceleration_exponent,omitempty"`  // IDM加速度指数δ，默认为4
}

// Station 线路上的车站配置
// 功能：定义线路上一个计划停站点
type Station struct {
	Name  string  `yaml:"name,omitempty"`  // 车站名（仅用于日志输出）
	S     float64 `yaml:"s"`               // 车站沿线路的位置（米）
	Dwell float64 `yaml:"dwell,omitempty"` // 停站时间（秒），默认为30
}

// Route 线路配置
// 功能：定义带计划停站的线路场景
// 说明：车站按位置升序排列，模拟器按顺序消费且不回头
type Route struct {
	Stations []Station `yaml:"stations"`
}

// Leader 前车配置
// 功能：定义匀速前车跟驰场景
// 说明：前车以恒定速度行驶，不受跟车模型影响
type Leader struct {
	S float64 `yaml:"s"` // 前车初始位置（米）
	V float64 `yaml:"v"` // 前车速度（米/秒，恒定）
}

// ControlStep 指定模拟器模拟时间范围和间隔的配置项
// 功能：定义仿真时间控制参数
type ControlStep struct {
	Start    int32   `yaml:"start,omitempty"` // 开始步数
	Total    int32   `yaml:"total,omitempty"` // 总步数，为0时由线路末站停站结束决定终止
	Interval float64 `yaml:"interval"`        // 每步的时间间隔（秒）
}

// Control 模拟器控制配置
// 功能：定义仿真系统的核心控制参数
type Control struct {
	Step ControlStep `yaml:"step"`
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
// 说明：route与leader二选一，分别对应停站线路场景与匀速前车跟驰场景
type Config struct {
	Vehicle VehicleAttr `yaml:"vehicle"`           // 车辆参数
	Control Control     `yaml:"control"`           // 模拟过程控制
	Route   *Route      `yaml:"route,omitempty"`   // 停站线路场景
	Leader  *Leader     `yaml:"leader,omitempty"`  // 匀速前车场景
}
