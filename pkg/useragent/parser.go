package useragent

import (
	"fmt"
	"os"
	"strings"

	"github.com/ua-parser/uap-go/uaparser"
	"go.uber.org/zap"
)

// Device types stored with each click.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
	DeviceBot     = "bot"
	DeviceUnknown = "unknown"
)

// Parser wraps the User-Agent parser with enhanced device type detection
type Parser struct {
	parser *uaparser.Parser
	log    *zap.Logger
}

// DeviceInfo represents parsed device information
type DeviceInfo struct {
	DeviceType string // mobile, desktop, tablet, bot, unknown
	Browser    string // Chrome, Firefox, Safari, etc.
	OS         string // Windows, iOS, Android, etc.
	Raw        string // Original User-Agent string
}

// NewParser creates a new User-Agent parser instance. An empty path uses
// the regexes bundled with uap-go.
func NewParser(regexFilePath string, log *zap.Logger) (*Parser, error) {
	if regexFilePath == "" {
		log.Info("User-Agent parser initialized with bundled regexes")
		return &Parser{parser: uaparser.NewFromSaved(), log: log}, nil
	}

	regexBytes, err := os.ReadFile(regexFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read regexes file %s: %w", regexFilePath, err)
	}

	parser, err := uaparser.NewFromBytes(regexBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create User-Agent parser: %w", err)
	}

	log.Info("User-Agent parser initialized successfully", zap.String("regexes_file", regexFilePath))

	return &Parser{
		parser: parser,
		log:    log,
	}, nil
}

// ParseUserAgent parses a User-Agent string and returns detailed device information
func (p *Parser) ParseUserAgent(userAgent string) *DeviceInfo {
	if userAgent == "" {
		return &DeviceInfo{
			DeviceType: DeviceUnknown,
			Browser:    DeviceUnknown,
			OS:         DeviceUnknown,
		}
	}

	client := p.parser.Parse(userAgent)

	deviceInfo := &DeviceInfo{
		DeviceType: determineDeviceType(client, userAgent),
		Browser:    formatFamily(client.UserAgent.Family),
		OS:         formatFamily(client.Os.Family),
		Raw:        userAgent,
	}

	p.log.Debug("parsed User-Agent",
		zap.String("device_type", deviceInfo.DeviceType),
		zap.String("browser", deviceInfo.Browser),
		zap.String("os", deviceInfo.OS),
	)

	return deviceInfo
}

// GuessDeviceType classifies a User-Agent by keywords when no parser is configured
func GuessDeviceType(userAgent string) string {
	switch {
	case userAgent == "":
		return DeviceUnknown
	case containsAny(userAgent, "bot", "spider", "crawler"):
		return DeviceBot
	case containsAny(userAgent, "iPad", "Tablet"):
		return DeviceTablet
	case containsAny(userAgent, "Mobile", "Android", "iPhone"):
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}

// determineDeviceType determines the device type based on parsed client info and raw User-Agent
func determineDeviceType(client *uaparser.Client, userAgent string) string {
	// Check for bots first
	if isBot(client.UserAgent.Family, userAgent) {
		return DeviceBot
	}

	deviceFamily := client.Device.Family
	if deviceFamily != "" && deviceFamily != "Other" {
		if containsAny(deviceFamily, "iPad", "Tablet", "Kindle", "Surface") {
			return DeviceTablet
		}
		if containsAny(deviceFamily, "iPhone", "Android", "BlackBerry", "Windows Phone", "Mobile", "Phone") {
			return DeviceMobile
		}
	}

	osFamily := client.Os.Family
	if containsAny(osFamily, "iOS", "Android", "Windows Phone", "BlackBerry OS", "Firefox OS", "Sailfish OS") {
		if isTabletOS(osFamily, userAgent) {
			return DeviceTablet
		}
		return DeviceMobile
	}

	if containsAny(osFamily, "Windows", "Mac OS X", "macOS", "Linux", "Ubuntu", "Chrome OS", "FreeBSD", "OpenBSD", "NetBSD") {
		return DeviceDesktop
	}

	return DeviceUnknown
}

var botIndicators = []string{
	"Googlebot", "Bingbot", "Slurp", "DuckDuckBot", "Baiduspider",
	"YandexBot", "facebookexternalhit", "Twitterbot", "LinkedInBot",
	"WhatsApp", "Telegram", "SkypeUriPreview", "bot", "crawler",
	"spider", "scraper",
}

func isBot(family, userAgent string) bool {
	return containsAny(family, botIndicators...) || containsAny(userAgent, botIndicators...)
}

// isTabletOS checks if the OS/User-Agent indicates a tablet
func isTabletOS(osFamily, userAgent string) bool {
	// iOS devices: differentiate iPad from iPhone
	if containsAny(osFamily, "iOS") {
		return containsAny(userAgent, "iPad")
	}

	// Android tablets typically don't have "Mobile" in User-Agent
	if containsAny(osFamily, "Android") {
		return !containsAny(userAgent, "Mobile")
	}

	return false
}

// containsAny reports whether str contains any of the substrings, ignoring case
func containsAny(str string, substrs ...string) bool {
	if str == "" {
		return false
	}
	lower := strings.ToLower(str)
	for _, s := range substrs {
		if s != "" && strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// formatFamily replaces empty and "Other" families with "unknown"
func formatFamily(s string) string {
	if s == "" || s == "Other" {
		return DeviceUnknown
	}
	return s
}
