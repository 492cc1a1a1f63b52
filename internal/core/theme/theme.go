package theme

import (
	"strings"
	"sync"
)

// Mode 主題模式
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Palette 畫面使用的顏色組
type Palette struct {
	Primary     string `json:"primary"`
	Secondary   string `json:"secondary"`
	Background  string `json:"background"`
	Surface     string `json:"surface"`
	Text        string `json:"text"`
	Subtext     string `json:"subtext"`
	Placeholder string `json:"placeholder"`
}

var palettes = map[Mode]Palette{
	Light: {
		Primary:     "#2B4162",
		Secondary:   "#C69F65",
		Background:  "#F1F3F4",
		Surface:     "#FFFFFF",
		Text:        "#1D2D44",
		Subtext:     "#5E6778",
		Placeholder: "#8B9DAE",
	},
	Dark: {
		Primary:     "#6096BA",
		Secondary:   "#D4AF7A",
		Background:  "#12181F",
		Surface:     "#1F2937",
		Text:        "#E7ECEF",
		Subtext:     "#8B9DAE",
		Placeholder: "#8B9DAE",
	},
}

// PaletteFor 取得指定模式的顏色，未知模式回傳淺色
func PaletteFor(m Mode) Palette {
	if p, ok := palettes[m]; ok {
		return p
	}
	return palettes[Light]
}

// ParseMode 解析平台偏好，只認 light / dark
func ParseMode(preference string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(preference))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// State 回傳給客戶端的主題狀態
type State struct {
	Mode   Mode    `json:"mode"`
	Colors Palette `json:"colors"`
}

// Context 目前的主題，可併發切換
type Context struct {
	mu   sync.RWMutex
	mode Mode
}

// NewContext 以平台偏好初始化，沒有或無法識別時使用淺色
func NewContext(preference string) *Context {
	mode, ok := ParseMode(preference)
	if !ok {
		mode = Light
	}
	return &Context{mode: mode}
}

// Mode 目前模式
func (c *Context) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// Colors 目前模式的顏色
func (c *Context) Colors() Palette {
	return PaletteFor(c.Mode())
}

// State 目前模式與顏色
func (c *Context) State() State {
	m := c.Mode()
	return State{Mode: m, Colors: PaletteFor(m)}
}

// Toggle 在淺色與深色之間切換，回傳切換後的狀態
func (c *Context) Toggle() State {
	c.mu.Lock()
	if c.mode == Dark {
		c.mode = Light
	} else {
		c.mode = Dark
	}
	m := c.mode
	c.mu.Unlock()
	return State{Mode: m, Colors: PaletteFor(m)}
}
