// Package brand provides centralized branding constants for the tool.
// The identity is loaded from brand.json at compile time via go:embed so
// forks can rebrand without touching code.
package brand

import (
	_ "embed"
	"encoding/json"
)

//go:embed brand.json
var brandJSON []byte

// Brand holds all branding information.
type Brand struct {
	Name           string `json:"name"`
	LowerName      string `json:"lowerName"`
	Description    string `json:"description"`
	BinaryName     string `json:"binaryName"`
	ConfigFileName string `json:"configFileName"`
	StateFileName  string `json:"stateFileName"`
	PowercfgBinary string `json:"powercfgBinary"`
	Version        string `json:"version"`
}

var b Brand

func init() {
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	Name = b.Name
	LowerName = b.LowerName
	Description = b.Description
	BinaryName = b.BinaryName
	ConfigFileName = b.ConfigFileName
	StateFileName = b.StateFileName
	PowercfgBinary = b.PowercfgBinary
	Version = b.Version
}

// Exported variables for convenience.
var (
	Name           string
	LowerName      string
	Description    string
	BinaryName     string
	ConfigFileName string
	StateFileName  string
	PowercfgBinary string
	Version        string
)
