package domain

import "runtime"

// Platform identifies the operating system family the encoder runs on
type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformWindows
	PlatformMacOS
	PlatformLinux
)

// PlatformFromGOOS maps a GOOS value to a Platform
func PlatformFromGOOS(goos string) Platform {
	switch goos {
	case "windows":
		return PlatformWindows
	case "darwin":
		return PlatformMacOS
	case "linux":
		return PlatformLinux
	default:
		return PlatformUnknown
	}
}

// CurrentPlatform returns the Platform of the running binary
func CurrentPlatform() Platform {
	return PlatformFromGOOS(runtime.GOOS)
}

func (p Platform) String() string {
	switch p {
	case PlatformWindows:
		return "windows"
	case PlatformMacOS:
		return "macos"
	case PlatformLinux:
		return "linux"
	default:
		return "unknown"
	}
}
