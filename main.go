package main

import (
	"encoding/base64"
	"flag"
	"os"
	"path/filepath"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/marche-sim-oss/task"
	"github.com/tsinghua-fib-lab/marche-sim-oss/utils/config"
	"gopkg.in/yaml.v2"
)

var (
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 轨迹CSV输出文件路径，为空则输出到标准输出
	outputPath = flag.String("output", "", "trajectory CSV output path (empty means stdout)")
	// 是否在模拟结束后绘制速度曲线图
	plot = flag.Bool("plot", false, "render speed profile charts after the simulation")
	// 曲线图输出文件夹
	plotDir = flag.String("plot-dir", ".", "chart output dir path")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "marche")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// 获取配置
	var c config.Config
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	}
	if file != nil {
		if err := yaml.UnmarshalStrict(file, &c); err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else {
		// 未指定配置时使用内置默认场景
		c = config.Default()
	}
	log.Infof("%+v", c)

	ctx, err := task.NewContext(c)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	trajectory := ctx.Run()

	w := os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			log.Fatalf("output file create err: %v", err)
		}
		defer f.Close()
		w = f
	}
	if err := trajectory.WriteCSV(w); err != nil {
		log.Fatalf("trajectory write err: %v", err)
	}

	if *plot {
		for name, svg := range map[string]string{
			"speed_distance.svg": trajectory.SpeedDistanceSVG(),
			"speed_time.svg":     trajectory.SpeedTimeSVG(),
		} {
			path := filepath.Join(*plotDir, name)
			if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
				log.Fatalf("chart write err: %v", err)
			}
			log.Infof("chart written to %s", path)
		}
	}
}
