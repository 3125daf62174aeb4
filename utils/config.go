package utils

import (
	"os"

	"casereview/api/models"

	yaml "gopkg.in/yaml.v2"
)

// OverlayYamlConfig applies an optional yaml configuration file on top of
// the environment-derived configuration. Missing file paths are ignored so
// deployments that configure purely through the environment keep working.
func OverlayYamlConfig(cfg *models.Config, filePath string) error {
	if filePath == "" {
		return nil
	}

	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	return yaml.NewDecoder(f).Decode(cfg)
}
