package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	iPhoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	iPadUA    = "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1"
	androidUA = "Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36"
	windowsUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	botUA     = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func TestParser_ParseUserAgent(t *testing.T) {
	p, err := NewParser("", zap.NewNop())
	require.NoError(t, err)

	tests := []struct {
		name   string
		ua     string
		device string
	}{
		{"iphone", iPhoneUA, DeviceMobile},
		{"ipad", iPadUA, DeviceTablet},
		{"android phone", androidUA, DeviceMobile},
		{"windows chrome", windowsUA, DeviceDesktop},
		{"googlebot", botUA, DeviceBot},
		{"empty", "", DeviceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := p.ParseUserAgent(tt.ua)
			assert.Equal(t, tt.device, info.DeviceType)
		})
	}

	info := p.ParseUserAgent(windowsUA)
	assert.Equal(t, "Chrome", info.Browser)
	assert.Equal(t, "Windows", info.OS)
	assert.Equal(t, windowsUA, info.Raw)
}

func TestNewParser_MissingFile(t *testing.T) {
	_, err := NewParser("/nonexistent/regexes.yaml", zap.NewNop())
	assert.Error(t, err)
}

func TestGuessDeviceType(t *testing.T) {
	assert.Equal(t, DeviceMobile, GuessDeviceType(iPhoneUA))
	assert.Equal(t, DeviceTablet, GuessDeviceType(iPadUA))
	assert.Equal(t, DeviceBot, GuessDeviceType(botUA))
	assert.Equal(t, DeviceDesktop, GuessDeviceType(windowsUA))
	assert.Equal(t, DeviceUnknown, GuessDeviceType(""))
}
