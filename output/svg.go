package output

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// SVG图表的固定尺寸与边距（像素）
const (
	chartWidth   = 800
	chartHeight  = 400
	marginLeft   = 60
	marginRight  = 20
	marginTop    = 40
	marginBottom = 50
)

// SpeedDistanceSVG 生成速度-距离曲线的SVG图表
// 功能：以距离为横轴、速度为纵轴绘制轨迹曲线
func (l *Log) SpeedDistanceSVG() string {
	xs := lo.Map(l.Samples, func(s Sample, _ int) float64 { return s.S })
	ys := lo.Map(l.Samples, func(s Sample, _ int) float64 { return s.V })
	return renderChart("Velocidad vs Distancia", "Distancia (m)", "Velocidad (m/s)", xs, ys)
}

// SpeedTimeSVG 生成速度-时间曲线的SVG图表
// 功能：以时间为横轴、速度为纵轴绘制轨迹曲线
func (l *Log) SpeedTimeSVG() string {
	xs := lo.Map(l.Samples, func(s Sample, _ int) float64 { return s.T })
	ys := lo.Map(l.Samples, func(s Sample, _ int) float64 { return s.V })
	return renderChart("Velocidad vs Tiempo", "Tiempo (s)", "Velocidad (m/s)", xs, ys)
}

// renderChart 绘制折线图SVG
// 功能：将一组(x, y)数据点渲染为带坐标轴和标题的SVG折线图
// 参数：title-标题，xLabel/yLabel-坐标轴标签，xs/ys-数据点坐标
// 返回：完整的SVG文档字符串
// 算法说明：
// 1. 计算数据范围，y轴下界固定为0（速度不为负）
// 2. 将数据点线性映射到绘图区域，y轴向上
// 3. 依次绘制背景、坐标轴、范围标注、折线
func renderChart(title, xLabel, yLabel string, xs, ys []float64) string {
	xMin, xMax := dataRange(xs)
	_, yMax := dataRange(ys)
	yMin := 0.0
	if xMax == xMin {
		xMax = xMin + 1
	}
	if yMax == yMin {
		yMax = yMin + 1
	}

	plotW := float64(chartWidth - marginLeft - marginRight)
	plotH := float64(chartHeight - marginTop - marginBottom)
	toX := func(x float64) float64 {
		return marginLeft + (x-xMin)/(xMax-xMin)*plotW
	}
	toY := func(y float64) float64 {
		return float64(chartHeight-marginBottom) - (y-yMin)/(yMax-yMin)*plotH
	}

	points := make([]string, 0, len(xs))
	for i := range xs {
		points = append(points, fmt.Sprintf("%.1f,%.1f", toX(xs[i]), toY(ys[i])))
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
`, chartWidth, chartHeight)
	fmt.Fprintf(&b, `  <rect width="%d" height="%d" fill="#f8f9fa" stroke="#dee2e6" stroke-width="1"/>
`, chartWidth, chartHeight)
	fmt.Fprintf(&b, `  <text x="%d" y="24" font-family="Arial, sans-serif" font-size="16" font-weight="bold" fill="#333">%s</text>
`, chartWidth/2-80, title)
	// 坐标轴
	fmt.Fprintf(&b, `  <line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#333" stroke-width="1"/>
`, marginLeft, chartHeight-marginBottom, chartWidth-marginRight, chartHeight-marginBottom)
	fmt.Fprintf(&b, `  <line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#333" stroke-width="1"/>
`, marginLeft, marginTop, marginLeft, chartHeight-marginBottom)
	// 轴标签与数据范围标注
	fmt.Fprintf(&b, `  <text x="%d" y="%d" font-family="Arial, sans-serif" font-size="12" fill="#333">%s</text>
`, chartWidth/2-40, chartHeight-12, xLabel)
	fmt.Fprintf(&b, `  <text x="14" y="%d" font-family="Arial, sans-serif" font-size="12" fill="#333" transform="rotate(-90 14 %d)">%s</text>
`, chartHeight/2+40, chartHeight/2+40, yLabel)
	fmt.Fprintf(&b, `  <text x="%d" y="%d" font-family="Arial, sans-serif" font-size="10" fill="#666">%.1f</text>
`, marginLeft, chartHeight-marginBottom+14, xMin)
	fmt.Fprintf(&b, `  <text x="%d" y="%d" font-family="Arial, sans-serif" font-size="10" fill="#666">%.1f</text>
`, chartWidth-marginRight-30, chartHeight-marginBottom+14, xMax)
	fmt.Fprintf(&b, `  <text x="%d" y="%d" font-family="Arial, sans-serif" font-size="10" fill="#666">%.1f</text>
`, marginLeft-30, marginTop+4, yMax)
	fmt.Fprintf(&b, `  <text x="%d" y="%d" font-family="Arial, sans-serif" font-size="10" fill="#666">%.1f</text>
`, marginLeft-30, chartHeight-marginBottom, yMin)
	if len(points) > 0 {
		fmt.Fprintf(&b, `  <polyline points="%s" fill="none" stroke="#4682B4" stroke-width="1.5"/>
`, strings.Join(points, " "))
	}
	b.WriteString("</svg>\n")
	return b.String()
}

// dataRange 计算数据的最小值与最大值
func dataRange(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}
	return lo.Min(data), lo.Max(data)
}
