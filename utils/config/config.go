package config

import (
	"fmt"

	"golang.org/x/exp/slices"
)

const (
	defaultInterval = 0.5 // 默认时间步长（秒）
	defaultDwell    = 30  // 默认停站时间（秒）
	defaultExponent = 4   // 默认IDM加速度指数
)

// RuntimeConfig 运行时配置
// 功能：存储仿真运行时的配置信息，包含补全默认值后的完整配置
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 全局控制配置
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：创建运行时配置对象，补全默认值并进行配置验证
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针，配置非法时返回错误
// 算法说明：
// 1. 补全默认值：时间步长0.5秒、停站时间30秒、加速度指数4
// 2. 验证所有参数，任一非法则拒绝启动
// 说明：验证在仿真开始前一次性完成，仿真过程中不再出现配置类错误
func NewRuntimeConfig(config Config) (*RuntimeConfig, error) {
	rc := &RuntimeConfig{}

	if config.Control.Step.Interval == 0 {
		config.Control.Step.Interval = defaultInterval
	}
	if config.Vehicle.AccelerationExponent == 0 {
		config.Vehicle.AccelerationExponent = defaultExponent
	}
	if config.Route != nil {
		for i := range config.Route.Stations {
			if config.Route.Stations[i].Dwell == 0 {
				config.Route.Stations[i].Dwell = defaultDwell
			}
		}
	}
	if err := validate(config); err != nil {
		return nil, err
	}

	rc.All = config
	rc.C = config.Control

	return rc, nil
}

// validate 验证配置合法性
// 功能：检查所有配置项，非法配置直接拒绝
// 算法说明：
// 1. 车辆参数：期望速度、车头时距、最大加速度严格为正，制动加速度严格为负，最小车距非负
// 2. 时间控制：时间步长严格为正，总步数非负
// 3. 场景：route与leader必须且只能配置一个
// 4. 车站：位置严格递增，停站时间非负
func validate(c Config) error {
	v := c.Vehicle
	if v.DesiredSpeed <= 0 {
		return fmt.Errorf("config: desired_speed must be positive, got %v", v.DesiredSpeed)
	}
	if v.Headway <= 0 {
		return fmt.Errorf("config: headway must be positive, got %v", v.Headway)
	}
	if v.MaxAcceleration <= 0 {
		return fmt.Errorf("config: max_acceleration must be positive, got %v", v.MaxAcceleration)
	}
	if v.UsualBrakingAcceleration >= 0 {
		return fmt.Errorf("config: usual_braking_acceleration must be negative, got %v", v.UsualBrakingAcceleration)
	}
	if v.MaxBrakingAcceleration >= 0 {
		return fmt.Errorf("config: max_braking_acceleration must be negative, got %v", v.MaxBrakingAcceleration)
	}
	if v.MinGap < 0 {
		return fmt.Errorf("config: min_gap must be non-negative, got %v", v.MinGap)
	}
	if v.AccelerationExponent <= 0 {
		return fmt.Errorf("config: acceleration_exponent must be positive, got %v", v.AccelerationExponent)
	}

	step := c.Control.Step
	if step.Interval <= 0 {
		return fmt.Errorf("config: step interval must be positive, got %v", step.Interval)
	}
	if step.Total < 0 {
		return fmt.Errorf("config: step total must be non-negative, got %v", step.Total)
	}

	if (c.Route == nil) == (c.Leader == nil) {
		return fmt.Errorf("config: exactly one of route and leader must be set")
	}
	if c.Leader != nil {
		if c.Leader.V < 0 {
			return fmt.Errorf("config: leader speed must be non-negative, got %v", c.Leader.V)
		}
		if step.Total == 0 {
			return fmt.Errorf("config: leader scenario requires a positive step total")
		}
	}
	if c.Route != nil {
		stations := c.Route.Stations
		if len(stations) == 0 {
			return fmt.Errorf("config: route must contain at least one station")
		}
		if !slices.IsSortedFunc(stations, func(a, b Station) int {
			switch {
			case a.S < b.S:
				return -1
			case a.S > b.S:
				return 1
			default:
				return 0
			}
		}) {
			return fmt.Errorf("config: stations must be ordered by increasing s")
		}
		for i, s := range stations {
			if i > 0 && s.S == stations[i-1].S {
				return fmt.Errorf("config: duplicate station position %v", s.S)
			}
			if s.S < 0 {
				return fmt.Errorf("config: station position must be non-negative, got %v", s.S)
			}
			if s.Dwell < 0 {
				return fmt.Errorf("config: station dwell must be non-negative, got %v", s.Dwell)
			}
		}
	}
	return nil
}

// Default 内置默认配置
// 功能：未提供配置文件时使用的默认场景
// 说明：匀速前车跟驰场景，前车初始位置50米、速度10米/秒，模拟120步（60秒）
func Default() Config {
	return Config{
		Vehicle: VehicleAttr{
			DesiredSpeed:             15,
			Headway:                  1.5,
			MaxAcceleration:          0.6,
			UsualBrakingAcceleration: -1.5,
			MaxBrakingAcceleration:   -4.5,
			MinGap:                   2,
			AccelerationExponent:     defaultExponent,
		},
		Control: Control{
			Step: ControlStep{Total: 120, Interval: defaultInterval},
		},
		Leader: &Leader{S: 50, V: 10},
	}
}
