package util

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"

	"github.com/dixieflatline76/ClearView/asset"
	"github.com/dixieflatline76/ClearView/config"
	"github.com/dixieflatline76/ClearView/util/log"
)

// EULAPreferenceKey is the preference key holding the acceptance record.
const EULAPreferenceKey = "eula_acceptance"

var assetMgr = asset.NewManager()

// EULAAcceptance is the stored record of an accepted data notice.
type EULAAcceptance struct {
	EULAVersion         string    `json:"eula_version"`
	AcceptanceTimestamp time.Time `json:"acceptance_timestamp"`
	Hash                string    `json:"hash"`
}

// generateEULAHash hashes the notice text, machine and version so an edited
// notice, a new release or a copied preference file needs a new acceptance.
func generateEULAHash(eulaText, version string) string {
	data := fmt.Sprintf("%s%s%s", eulaText, getMachineID(), version)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

func getMachineID() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown-host"
	}
	return hostname
}

// EULAText returns the data notice shown before first use.
func EULAText() string {
	text, err := assetMgr.GetText(asset.EULAText)
	if err != nil {
		return ""
	}
	return text
}

// HasAcceptedEULA reports whether the current notice was accepted for this version.
func HasAcceptedEULA(prefs fyne.Preferences) bool {
	raw := prefs.String(EULAPreferenceKey)
	if raw == "" {
		return false
	}

	var acceptance EULAAcceptance
	if err := json.Unmarshal([]byte(raw), &acceptance); err != nil {
		log.Println("Error parsing EULA acceptance:", err)
		return false
	}

	currentHash := generateEULAHash(EULAText(), config.AppVersion)
	return acceptance.Hash == currentHash && acceptance.EULAVersion == config.AppVersion
}

// MarkEULAAccepted records acceptance of the current notice.
func MarkEULAAccepted(prefs fyne.Preferences) {
	acceptance := EULAAcceptance{
		EULAVersion:         config.AppVersion,
		AcceptanceTimestamp: time.Now(),
		Hash:                generateEULAHash(EULAText(), config.AppVersion),
	}

	jsonData, err := json.Marshal(acceptance)
	if err != nil {
		log.Println("Error encoding EULA acceptance:", err)
		return
	}
	prefs.SetString(EULAPreferenceKey, string(jsonData))
}
