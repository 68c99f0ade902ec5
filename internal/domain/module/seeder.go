package module

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/devicedash/devicedash/internal/domain/dispatch"
	"github.com/devicedash/devicedash/internal/shared/types"
)

// DefaultDescriptors returns the built-in module set seeded on first run.
// All modules start enabled; Order matches slice position. IDs are stable
// and never reused for a different feature.
func DefaultDescriptors() []types.ModuleDescriptor {
	defaults := []struct {
		id, name, key, desc, icon string
	}{
		{"mod-cpu", "CPU", dispatch.KeyCPU, "Processor cores, frequency and load", "memory"},
		{"mod-ram", "RAM", dispatch.KeyRAM, "Memory usage and VM statistics", "database"},
		{"mod-storage", "Storage", dispatch.KeyStorageInfo, "Internal and external storage capacity", "hard-drive"},
		{"mod-sensors", "Sensors", dispatch.KeySensors, "Accelerometer, gyroscope and environment sensors", "activity"},
		{"mod-display", "Display", dispatch.KeyDisplay, "Resolution, density and refresh rate", "monitor"},
		{"mod-camera", "Camera", dispatch.KeyCamera, "Camera hardware capabilities", "camera"},
		{"mod-battery", "Battery", dispatch.KeyBattery, "Charge level, health and temperature", "battery"},
		{"mod-network", "Network", dispatch.KeyNetwork, "Connectivity and telephony info", "wifi"},
		{"mod-duplicates", "Duplicate Scanner", dispatch.KeyDuplicateScan, "Find duplicate files", "copy"},
		{"mod-pdf-export", "PDF Export", dispatch.KeyPDFExport, "Export device report as PDF", "file-text"},
		{"mod-notifications", "Notifications", dispatch.KeyNotifications, "Status notifications", "bell"},
	}

	descriptors := make([]types.ModuleDescriptor, len(defaults))
	for i, d := range defaults {
		descriptors[i] = types.ModuleDescriptor{
			ID:          d.id,
			Name:        d.name,
			DispatchKey: d.key,
			Enabled:     true,
			Order:       i,
			Description: d.desc,
			Icon:        d.icon,
		}
	}
	return descriptors
}

// manifestEntry is one override record in the seed manifest. Only display
// metadata may be overridden; id and dispatch_key stay immutable.
type manifestEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Enabled     *bool  `yaml:"enabled"`
}

// LoadSeedManifest applies display-metadata overrides from a YAML manifest
// to the built-in defaults. A missing file returns the defaults unchanged;
// a malformed file is an error so packaging mistakes surface at startup.
func LoadSeedManifest(path string) ([]types.ModuleDescriptor, error) {
	defaults := DefaultDescriptors()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return nil, fmt.Errorf("failed to read seed manifest: %w", err)
	}

	var manifest struct {
		Modules []manifestEntry `yaml:"modules"`
	}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse seed manifest: %w", err)
	}

	byID := make(map[string]*types.ModuleDescriptor, len(defaults))
	for i := range defaults {
		byID[defaults[i].ID] = &defaults[i]
	}

	for _, entry := range manifest.Modules {
		desc, ok := byID[entry.ID]
		if !ok {
			continue
		}
		if entry.Name != "" {
			desc.Name = entry.Name
		}
		if entry.Description != "" {
			desc.Description = entry.Description
		}
		if entry.Icon != "" {
			desc.Icon = entry.Icon
		}
		if entry.Enabled != nil {
			desc.Enabled = *entry.Enabled
		}
	}

	return defaults, nil
}
