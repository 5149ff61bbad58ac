package config

import (
	"fmt"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/glyphfield/pkg/embedded"
)

// DefaultFieldConfigPath 内嵌默认配置的路径
const DefaultFieldConfigPath = "data/field.yaml"

// MaxParticleCount 每个档位的粒子数上限
// 每个粒子绘制为 4 个顶点，顶点索引是 uint16
const MaxParticleCount = math.MaxUint16 / 4

// FieldConfig 粒子场配置
//
// 描述粒子数量、环境布局、文字形态、阶段时长与配色。
// 未在 YAML 中出现的字段保持 DefaultFieldConfig 中的默认值。
//
// 配置文件位置: data/field.yaml
type FieldConfig struct {
	// Message 粒子聚合成的文字
	Message string `yaml:"message"`

	// MobileBreakpoint 视口宽度低于此值（像素）时使用 Mobile 档位
	MobileBreakpoint int `yaml:"mobileBreakpoint"`

	// Mobile 小屏档位
	Mobile ViewportProfile `yaml:"mobile"`

	// Desktop 大屏档位
	Desktop ViewportProfile `yaml:"desktop"`

	// Layout 空间布局
	Layout LayoutConfig `yaml:"layout"`

	// Timing 阶段时长（秒）
	Timing TimingConfig `yaml:"timing"`

	// Motion 运动参数
	Motion MotionConfig `yaml:"motion"`

	// Camera 透视相机参数
	Camera CameraConfig `yaml:"camera"`

	// Palette 粒子颜色（十六进制，如 "#00d9ff"），每个粒子随机取一个
	Palette []string `yaml:"palette"`

	// Hero 粒子退场后淡入的前景内容
	Hero HeroConfig `yaml:"hero"`
}

// HeroConfig 前景内容
type HeroConfig struct {
	// Title 标题
	Title string `yaml:"title"`
	// Subtitle 副标题，可为空
	Subtitle string `yaml:"subtitle"`
}

// ViewportProfile 单个视口档位的粒子参数
type ViewportProfile struct {
	// ParticleCount 粒子数量
	ParticleCount int `yaml:"particleCount"`

	// ParticleSize 粒子名义尺寸（世界单位）
	ParticleSize float64 `yaml:"particleSize"`

	// TextSize 文字字号（世界单位）
	TextSize float64 `yaml:"textSize"`
}

// Range 闭区间 [Min, Max]
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// LayoutConfig 空间布局配置
type LayoutConfig struct {
	// AmbientRadius 环境布局球壳半径
	AmbientRadius Range `yaml:"ambientRadius"`

	// FallbackRadius 文字点云不足时，多余粒子所在球壳半径
	FallbackRadius Range `yaml:"fallbackRadius"`

	// TextDepth 文字厚度（Z 方向）
	TextDepth float64 `yaml:"textDepth"`
}

// TimingConfig 阶段时长配置（秒）
type TimingConfig struct {
	// InitialDelay 进入 ambient 后至少停留的时间
	InitialDelay float64 `yaml:"initialDelay"`

	// TransitionDuration enteringText / leavingText 时长
	TransitionDuration float64 `yaml:"transitionDuration"`

	// HoldDuration holdingText 时长
	HoldDuration float64 `yaml:"holdDuration"`
}

// MotionConfig 运动参数
type MotionConfig struct {
	// AmbientDrift ambient 阶段垂直摆动幅度
	AmbientDrift float64 `yaml:"ambientDrift"`

	// PointerSmoothing 指针平滑系数（每帧）
	PointerSmoothing float64 `yaml:"pointerSmoothing"`

	// PointerRotation 指针偏移到旋转角的比例
	PointerRotation float64 `yaml:"pointerRotation"`

	// Opacity 粒子不透明度
	Opacity float64 `yaml:"opacity"`
}

// CameraConfig 透视相机参数
type CameraConfig struct {
	// FOV 垂直视角（度）
	FOV float64 `yaml:"fov"`
	// Near 近裁剪面
	Near float64 `yaml:"near"`
	// Far 远裁剪面
	Far float64 `yaml:"far"`
	// Distance 相机到原点的距离（沿 +Z）
	Distance float64 `yaml:"distance"`
}

// ViewportClass 视口档位
type ViewportClass int

const (
	// ViewportDesktop 大屏
	ViewportDesktop ViewportClass = iota
	// ViewportMobile 小屏
	ViewportMobile
)

func (c ViewportClass) String() string {
	if c == ViewportMobile {
		return "mobile"
	}
	return "desktop"
}

// DefaultFieldConfig 返回默认配置
func DefaultFieldConfig() *FieldConfig {
	return &FieldConfig{
		Message:          "Hello, I'm SOHAM",
		MobileBreakpoint: 768,
		Mobile: ViewportProfile{
			ParticleCount: 200,
			ParticleSize:  0.15,
			TextSize:      0.5,
		},
		Desktop: ViewportProfile{
			ParticleCount: 400,
			ParticleSize:  0.2,
			TextSize:      1.0,
		},
		Layout: LayoutConfig{
			AmbientRadius:  Range{Min: 20, Max: 30},
			FallbackRadius: Range{Min: 3, Max: 5},
			TextDepth:      0.1,
		},
		Timing: TimingConfig{
			InitialDelay:       1.0,
			TransitionDuration: 2.5,
			HoldDuration:       3.0,
		},
		Motion: MotionConfig{
			AmbientDrift:     0.3,
			PointerSmoothing: 0.05,
			PointerRotation:  0.3,
			Opacity:          0.7,
		},
		Camera: CameraConfig{
			FOV:      75,
			Near:     0.1,
			Far:      1000,
			Distance: 30,
		},
		Palette: []string{"#00d9ff", "#6e56cf", "#ff61d8"},
		Hero: HeroConfig{
			Title: "Hello, I'm SOHAM",
		},
	}
}

// ParseFieldConfig 解析 YAML 配置，缺省字段使用默认值
func ParseFieldConfig(data []byte) (*FieldConfig, error) {
	cfg := DefaultFieldConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse field config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid field config: %w", err)
	}

	return cfg, nil
}

// LoadFieldConfig 从磁盘加载粒子场配置
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *FieldConfig: 加载成功后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadFieldConfig(path string) (*FieldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field config: %w", err)
	}
	return ParseFieldConfig(data)
}

// LoadEmbeddedFieldConfig 从内嵌资源加载粒子场配置
func LoadEmbeddedFieldConfig(path string) (*FieldConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded field config: %w", err)
	}
	return ParseFieldConfig(data)
}

// Validate 验证配置有效性
func (c *FieldConfig) Validate() error {
	if c.MobileBreakpoint < 0 {
		return fmt.Errorf("mobileBreakpoint must be >= 0, got %d", c.MobileBreakpoint)
	}

	for name, p := range map[string]ViewportProfile{"mobile": c.Mobile, "desktop": c.Desktop} {
		if p.ParticleCount < 1 || p.ParticleCount > MaxParticleCount {
			return fmt.Errorf("%s.particleCount must be in [1, %d], got %d", name, MaxParticleCount, p.ParticleCount)
		}
		if p.ParticleSize <= 0 {
			return fmt.Errorf("%s.particleSize must be > 0, got %.3f", name, p.ParticleSize)
		}
		if p.TextSize <= 0 {
			return fmt.Errorf("%s.textSize must be > 0, got %.3f", name, p.TextSize)
		}
	}

	for name, r := range map[string]Range{"ambientRadius": c.Layout.AmbientRadius, "fallbackRadius": c.Layout.FallbackRadius} {
		if r.Min < 0 || r.Min > r.Max {
			return fmt.Errorf("layout.%s invalid: min(%.1f) max(%.1f)", name, r.Min, r.Max)
		}
	}

	if c.Timing.InitialDelay < 0 {
		return fmt.Errorf("timing.initialDelay must be >= 0, got %.2f", c.Timing.InitialDelay)
	}
	if c.Timing.TransitionDuration <= 0 {
		return fmt.Errorf("timing.transitionDuration must be > 0, got %.2f", c.Timing.TransitionDuration)
	}
	if c.Timing.HoldDuration <= 0 {
		return fmt.Errorf("timing.holdDuration must be > 0, got %.2f", c.Timing.HoldDuration)
	}

	if c.Motion.PointerSmoothing < 0 || c.Motion.PointerSmoothing > 1 {
		return fmt.Errorf("motion.pointerSmoothing must be in [0,1], got %.3f", c.Motion.PointerSmoothing)
	}
	if c.Motion.Opacity < 0 || c.Motion.Opacity > 1 {
		return fmt.Errorf("motion.opacity must be in [0,1], got %.3f", c.Motion.Opacity)
	}

	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera.fov must be in (0,180), got %.1f", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera near/far invalid: near(%.2f) far(%.2f)", c.Camera.Near, c.Camera.Far)
	}

	if len(c.Palette) == 0 {
		return fmt.Errorf("palette must not be empty")
	}
	if _, err := c.PaletteRGB(); err != nil {
		return err
	}

	return nil
}

// ClassFor 根据视口宽度返回档位
func (c *FieldConfig) ClassFor(width int) ViewportClass {
	if width < c.MobileBreakpoint {
		return ViewportMobile
	}
	return ViewportDesktop
}

// Profile 返回指定档位的参数
func (c *FieldConfig) Profile(class ViewportClass) ViewportProfile {
	if class == ViewportMobile {
		return c.Mobile
	}
	return c.Desktop
}

// PaletteRGB 将十六进制调色板解析为 [0,1] 区间的 RGB
func (c *FieldConfig) PaletteRGB() ([][3]float64, error) {
	out := make([][3]float64, 0, len(c.Palette))
	for _, hex := range c.Palette {
		col, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette color %q invalid: %w", hex, err)
		}
		out = append(out, [3]float64{col.R, col.G, col.B})
	}
	return out, nil
}
