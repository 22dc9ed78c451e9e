package settings

import (
	"encoding/json"
	"os"
	"time"

	"CardDesk/internal/model"
)

// LoadSettings reads desk settings from a JSON file. Returns nil (no
// error) when the file doesn't exist yet.
func LoadSettings(filePath string) (*model.DeskSettings, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var s model.DeskSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSettings writes desk settings to a JSON file.
func SaveSettings(filePath string, s *model.DeskSettings) error {
	s.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
