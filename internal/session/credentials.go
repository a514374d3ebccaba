package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pauljones0/thehub-deal-poster/internal/models"
	"github.com/pauljones0/thehub-deal-poster/internal/validator"
)

// LoadCredentials reads {"username": ..., "password": ...} from path.
func LoadCredentials(path string, v *validator.Validator) (models.Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Credentials{}, fmt.Errorf("%w at %s", models.ErrCredentialsMissing, path)
		}
		return models.Credentials{}, fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds models.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return models.Credentials{}, fmt.Errorf("failed to parse credentials %s: %w", path, err)
	}
	if err := v.ValidateCredentials(creds); err != nil {
		return models.Credentials{}, fmt.Errorf("invalid credentials %s: %w", path, err)
	}
	return creds, nil
}
