// Package task 实现仿真任务的主循环。
//
// 仿真以固定时间步推进，每步内：
//  1. 时钟前进一步；
//  2. 根据场景（停站线路或匀速前车）决定车辆前方障碍并更新车辆状态；
//  3. 将车辆状态追加到轨迹日志。
//
// 停站由显式状态机处理：驶向车站 → 制动进站 → 停站 → 出站，
// 不使用错误传播作为流程控制。
package task

import (
	"flag"
	"fmt"

	"github.com/tsinghua-fib-lab/marche-sim-oss/clock"
	"github.com/tsinghua-fib-lab/marche-sim-oss/entity/route"
	"github.com/tsinghua-fib-lab/marche-sim-oss/entity/vehicle"
	"github.com/tsinghua-fib-lab/marche-sim-oss/output"
	"github.com/tsinghua-fib-lab/marche-sim-oss/utils/config"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

const (
	// stopVEpsilon 到站判定的速度阈值（米/秒）
	// 说明：IDM制动只会渐近地趋于0，速度低于该阈值即认为车辆已停稳
	stopVEpsilon = 0.05
	// arrivalSlack 到站判定的距离裕量（米）
	// 说明：车辆在停车线前最小车距处达到平衡，距离进入最小车距加该裕量即认为到站
	arrivalSlack = 0.5
	// departVThreshold 出站结束判定的速度阈值（米/秒）
	departVThreshold = 1.0
)

// StopState 停站状态机状态
type StopState int

const (
	StateApproaching  StopState = iota // 驶向下一站（或自由流）
	StateDecelerating                  // 制动进站
	StateDwelling                      // 停站中
	StateDeparting                     // 出站加速
)

// String 获取状态的字符串表示
func (s StopState) String() string {
	switch s {
	case StateApproaching:
		return "approaching"
	case StateDecelerating:
		return "decelerating"
	case StateDwelling:
		return "dwelling"
	case StateDeparting:
		return "departing"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Context 仿真任务上下文
// 功能：包含一次仿真任务的所有变量和状态，替代原来的全局变量
// 说明：管理仿真系统的所有组件，包括时钟、车辆、线路/前车、轨迹输出
type Context struct {
	// 时钟
	clock *clock.Clock
	// 跟随车辆
	vehicle *vehicle.Vehicle
	// 停站线路，仅停站场景下非空
	route *route.Route
	// 前车状态，仅匀速前车场景下非空
	leader *vehicle.Obstruction

	// 停站状态机
	state StopState
	// 当前停站剩余时间（秒）
	dwellRemaining float64

	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig
	// 轨迹输出
	trajectory output.Log
}

// NewContext 创建新的仿真任务上下文
// 功能：验证配置并初始化仿真系统的所有组件
// 参数：c-配置对象
// 返回：初始化完成的Context实例，配置非法时返回错误
// 算法说明：
// 1. 构造运行时配置并完成全部上界检查，非法配置直接拒绝，仿真不启动
// 2. 创建时钟与车辆（初始位置0、速度0）
// 3. 根据配置创建线路或前车
func NewContext(c config.Config) (*Context, error) {
	rc, err := config.NewRuntimeConfig(c)
	if err != nil {
		return nil, fmt.Errorf("task: %w", err)
	}

	ctx := &Context{
		runtimeConfig: rc,
		state:         StateApproaching,
	}
	ctx.clock = clock.New(rc.C.Step)
	ctx.vehicle = vehicle.New(rc.All.Vehicle, 0, 0)
	if rc.All.Route != nil {
		ctx.route = route.New(rc.All.Route)
		log.Infof("route scenario: %d stations", ctx.route.Len())
	} else {
		ctx.leader = &vehicle.Obstruction{S: rc.All.Leader.S, V: rc.All.Leader.V}
		log.Infof("leader scenario: leader at s=%.1f, v=%.1f", ctx.leader.S, ctx.leader.V)
	}
	return ctx, nil
}

// Run 运行仿真任务
// 功能：执行完整的仿真主循环并返回轨迹日志
// 返回：按时间顺序排列的轨迹采样序列
// 说明：
// 1. 每步依次执行时钟前进、实体更新、轨迹采样
// 2. 设置了结束步时到结束步终止；停站场景未设置结束步时，末站停站结束后终止
// 3. 循环为单线程同步执行，两次相同配置的运行产生完全相同的轨迹
func (ctx *Context) Run() *output.Log {
	for {
		ctx.clock.Tick()
		ctx.update()
		ctx.trajectory.Append(output.Sample{
			T: ctx.clock.T,
			S: ctx.vehicle.S(),
			V: ctx.vehicle.V(),
		})
		if ctx.clock.InternalStep%int32(*heartBeatInterval) == 0 {
			log.Infof(
				"STEP: %d (%s) s=%.1f v=%.2f state=%v",
				ctx.clock.InternalStep, ctx.clock, ctx.vehicle.S(), ctx.vehicle.V(), ctx.state,
			)
		}
		if ctx.done() {
			break
		}
	}
	log.Infof("simulation complete at %s after %d steps", ctx.clock, ctx.trajectory.Len())
	return &ctx.trajectory
}

// done 检查仿真是否应当终止
func (ctx *Context) done() bool {
	if ctx.clock.Done() {
		return true
	}
	// 未设置结束步的停站场景：末站停站结束即终止
	return ctx.clock.END_STEP < 0 && ctx.route != nil && ctx.route.Finished()
}

// update 单步更新
// 功能：根据场景更新前车/车站状态与车辆状态
// 算法说明：
// 匀速前车场景：前车先按恒定速度前移，随后车辆以前车为障碍更新。
// 停站场景：
// 1. 停站中：冻结车辆，扣减停站剩余时间，计时结束则消费车站并转为出站状态
// 2. 其他状态：以下一个未消费车站为虚拟停车线（位置为车站位置、速度为0）更新车辆；
//    速度低于阈值且距离进入最小车距加裕量时转入停站状态；
//    所有车站消费完后按自由流行驶
func (ctx *Context) update() {
	dt := ctx.clock.DT
	veh := ctx.vehicle

	if ctx.route == nil {
		ctx.leader.S += ctx.leader.V * dt
		veh.Update(dt, ctx.leader)
		return
	}

	if ctx.state == StateDwelling {
		veh.Hold()
		ctx.dwellRemaining -= dt
		if ctx.dwellRemaining <= 1e-9 {
			st, _ := ctx.route.Next()
			ctx.route.Consume()
			ctx.state = StateDeparting
			ctx.dwellRemaining = 0
			log.Infof("t=%s departing %s", ctx.clock, stationLabel(st))
		}
		return
	}

	st, ok := ctx.route.Next()
	if !ok {
		// 所有车站已消费，自由流直至结束
		veh.Update(dt, nil)
		ctx.state = StateApproaching
		return
	}

	gap := st.S - veh.S()
	if veh.V() < stopVEpsilon && gap <= veh.MinGap()+arrivalSlack {
		veh.Hold()
		ctx.state = StateDwelling
		ctx.dwellRemaining = st.Dwell
		log.Infof("t=%s arrived at %s (s=%.1f), dwelling %.0fs", ctx.clock, stationLabel(st), veh.S(), st.Dwell)
		return
	}

	veh.Update(dt, &vehicle.Obstruction{S: st.S, V: 0})
	ctx.annotateState()
}

// annotateState 标注非停站状态
// 功能：根据当前加速度与速度更新状态机的标注状态
// 说明：驶向车站、制动进站、出站加速对模型输入没有区别，
// 区分它们只用于日志与状态查询；停站是唯一改变行为的状态
func (ctx *Context) annotateState() {
	veh := ctx.vehicle
	switch {
	case ctx.state == StateDeparting && veh.V() < departVThreshold && veh.A() >= 0:
		// 出站加速未完成
	case veh.A() < 0:
		if ctx.state != StateDecelerating {
			log.Debugf("t=%s state %v -> %v", ctx.clock, ctx.state, StateDecelerating)
		}
		ctx.state = StateDecelerating
	default:
		if ctx.state != StateApproaching {
			log.Debugf("t=%s state %v -> %v", ctx.clock, ctx.state, StateApproaching)
		}
		ctx.state = StateApproaching
	}
}

// stationLabel 获取车站的日志标签
func stationLabel(st route.Station) string {
	if st.Name != "" {
		return fmt.Sprintf("station %q", st.Name)
	}
	return fmt.Sprintf("station at s=%.1f", st.S)
}

// Clock 获取仿真时钟
func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

// State 获取当前停站状态机状态
func (ctx *Context) State() StopState {
	return ctx.state
}

// RuntimeConfig 获取运行时配置
func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}
