package vehicle

import (
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/samber/lo"
)

// followImpl 跟车模型核心实现
// 功能：实现智能驾驶模型(IDM)的跟车逻辑
// 参数：selfV-本车速度，targetV-目标速度，aheadV-前车速度，distance-车距，minGap-最小车距，headway-安全车头时距
// 返回：计算得到的加速度（米/秒²）
// 算法说明：
// 1. 检查是否发生碰撞（距离小于等于0），必须先于除法检查以避免除零或符号反转
// 2. 使用IDM模型计算期望车距：s_star = minGap + max(0, v*headway + v*(v-v_ahead)/(2*sqrt(a*b)))
// 3. 计算加速度：a = maxA * (1 - (v/targetV)^delta - (s_star/distance)^2)
// 4. 限制加速度在制动和加速范围内
// 说明：纯函数，相同输入总是产生相同输出
func (l *controller) followImpl(
	selfV, targetV, aheadV, distance, minGap, headway float64,
) float64 {
	var acc float64
	if distance <= 0 {
		// 车辆已经到达或越过障碍位置，紧急制动
		acc = -mathutil.INF
	} else {
		// https://en.wikipedia.org/wiki/Intelligent_driver_model
		// 计算期望车距：s_star = minGap + max(0, v*headway + v*(v-v_ahead)/(2*sqrt(a*b)))
		s_star := minGap + math.Max(
			0,
			selfV*headway+selfV*(selfV-aheadV)/2/math.Sqrt(-l.usualBrakingA*l.maxA),
		)
		// IDM加速度公式：a = maxA * (1 - (v/targetV)^delta - (s_star/distance)^2)
		acc = l.maxA * (1 - math.Pow(selfV/targetV, l.delta) - math.Pow(s_star/distance, 2))
	}
	return lo.Clamp(acc, l.maxBrakingA, l.maxA) // 限制加速度在合理范围内
}

// follow 跟车模型
// 功能：使用控制器默认参数调用跟车模型
// 参数：aheadV-前方障碍速度，distance-与前方障碍的距离
// 返回：计算得到的加速度（米/秒²）
// 说明：前方障碍可以是真实前车，也可以是车站处速度为0的虚拟停车线
func (l *controller) follow(aheadV, distance float64) float64 {
	return l.followImpl(l.v, l.desiredV, aheadV, distance, l.minGap, l.headway)
}

// freeDrive 自由流加速度
// 功能：前方无障碍时的加速度计算
// 返回：计算得到的加速度（米/秒²）
// 说明：以无穷远车距、速度差为0调用跟车模型，加速度只由期望速度项决定
func (l *controller) freeDrive() float64 {
	return l.follow(l.v, mathutil.INF)
}
