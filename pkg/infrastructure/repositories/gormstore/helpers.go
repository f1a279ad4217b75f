package gormstore

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

// translate maps gorm's not-found error onto the domain sentinel
func translate(err error, kind, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, entities.ErrNotFound)
	}
	return fmt.Errorf("failed to find %s: %w", kind, err)
}

// deleted reports a not-found error when a delete touched no rows
func deleted(result *gorm.DB, kind, id string) error {
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, entities.ErrNotFound)
	}
	return nil
}

func marshalJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalJSON(data string, v interface{}) error {
	if data == "" {
		return nil
	}
	return json.Unmarshal([]byte(data), v)
}
