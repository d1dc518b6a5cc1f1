package vehicle

import (
	"github.com/tsinghua-fib-lab/marche-sim-oss/utils/config"
)

// controller 车辆控制器
// 功能：管理车辆的纵向控制逻辑，即跟车与自由流加速度计算
type controller struct {
	// 控制器保持的参数

	self          *Vehicle // 模块所在车辆
	usualBrakingA float64  // 常用制动加速度（负值）
	maxBrakingA   float64  // 最大制动加速度（负值）
	maxA          float64  // 最大加速度
	desiredV      float64  // 期望速度v0
	minGap        float64  // 最小车距s0
	headway       float64  // 安全车头时距T
	delta         float64  // IDM加速度指数

	// 每次update时更新

	v  float64 // 当前速度
	dt float64 // 时间步长
}

// newController 创建新的车辆控制器
// 功能：根据车辆属性初始化控制器，设置各种控制参数
// 参数：self-车辆实体，attr-车辆属性配置
// 返回：初始化完成的控制器实例
// 说明：属性在配置阶段已完成验证，这里不再重复检查
func newController(self *Vehicle, attr config.VehicleAttr) *controller {
	return &controller{
		self:          self,
		usualBrakingA: attr.UsualBrakingAcceleration,
		maxBrakingA:   attr.MaxBrakingAcceleration,
		maxA:          attr.MaxAcceleration,
		desiredV:      attr.DesiredSpeed,
		minGap:        attr.MinGap,
		headway:       attr.Headway,
		delta:         attr.AccelerationExponent,
	}
}

// prepare 更新控制器的每步状态
// 功能：在每次加速度计算前同步当前速度与时间步长
func (l *controller) prepare(v, dt float64) {
	l.v = v
	l.dt = dt
}
