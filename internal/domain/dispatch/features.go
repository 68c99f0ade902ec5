package dispatch

import (
	"github.com/devicedash/devicedash/internal/shared/types"
)

// Shipped dispatch keys. Stable across app versions: a key is never reused
// for a different feature once released.
const (
	KeyCPU           = "cpu"
	KeyRAM           = "ram"
	KeyStorageInfo   = "storage_info"
	KeySensors       = "sensors"
	KeyDisplay       = "display"
	KeyCamera        = "camera"
	KeyBattery       = "battery"
	KeyNetwork       = "network"
	KeyDuplicateScan = "duplicate_scan"
	KeyPDFExport     = "pdf_export"
	KeyNotifications = "notifications"
)

// NewDefaultRegistry returns the registry for the feature set this version
// ships. The mapping is total over these keys and explicitly partial over
// keys from future or removed versions.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(KeyCPU, definition(KeyCPU, "CPU", "memory"))
	r.Register(KeyRAM, definition(KeyRAM, "RAM", "database"))
	r.Register(KeyStorageInfo, definition(KeyStorageInfo, "Storage", "hard-drive"))
	r.Register(KeySensors, definition(KeySensors, "Sensors", "activity"))
	r.Register(KeyDisplay, definition(KeyDisplay, "Display", "monitor"))
	r.Register(KeyCamera, definition(KeyCamera, "Camera", "camera"))
	r.Register(KeyBattery, definition(KeyBattery, "Battery", "battery"))
	r.Register(KeyNetwork, definition(KeyNetwork, "Network", "wifi"))

	r.Register(KeyDuplicateScan, gated(KeyDuplicateScan, "Duplicate Scanner", "copy", types.FlagTools))
	r.Register(KeyPDFExport, gated(KeyPDFExport, "PDF Export", "file-text", types.FlagPremium))
	r.Register(KeyNotifications, gated(KeyNotifications, "Notifications", "bell", types.FlagPremium))

	return r
}

func definition(key, title, icon string) Factory {
	return func() types.FeatureDefinition {
		return types.FeatureDefinition{Key: key, Title: title, Icon: icon}
	}
}

func gated(key, title, icon string, flag types.EntitlementFlag) Factory {
	return func() types.FeatureDefinition {
		return types.FeatureDefinition{
			Key:          key,
			Title:        title,
			Icon:         icon,
			Gated:        true,
			RequiredFlag: flag,
		}
	}
}
