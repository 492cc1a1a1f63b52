package theme

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext_Preference(t *testing.T) {
	assert.Equal(t, Dark, NewContext("dark").Mode())
	assert.Equal(t, Dark, NewContext(" DARK ").Mode())
	assert.Equal(t, Light, NewContext("light").Mode())
	assert.Equal(t, Light, NewContext("").Mode())
	assert.Equal(t, Light, NewContext("sepia").Mode())
}

func TestContext_Toggle(t *testing.T) {
	c := NewContext("light")

	s := c.Toggle()
	assert.Equal(t, Dark, s.Mode)
	assert.Equal(t, "#12181F", s.Colors.Background)
	assert.Equal(t, Dark, c.Mode())

	s = c.Toggle()
	assert.Equal(t, Light, s.Mode)
	assert.Equal(t, "#F1F3F4", s.Colors.Background)
}

func TestPalettes(t *testing.T) {
	light := PaletteFor(Light)
	assert.Equal(t, "#2B4162", light.Primary)
	assert.Equal(t, "#1D2D44", light.Text)

	dark := PaletteFor(Dark)
	assert.Equal(t, "#6096BA", dark.Primary)
	assert.Equal(t, "#E7ECEF", dark.Text)
	assert.Equal(t, dark.Subtext, dark.Placeholder)

	assert.Equal(t, light, PaletteFor(Mode("unknown")))
}

func TestContext_ConcurrentToggle(t *testing.T) {
	c := NewContext("light")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Toggle()
			_ = c.State()
		}()
	}
	wg.Wait()

	// 偶數次切換後回到原本模式
	assert.Equal(t, Light, c.Mode())
}
