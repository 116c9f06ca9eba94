package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/epharg/eph-dashboard-go/internal/domain/repository"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

// EnvPrefix prefixes every environment override (EPH_HOUSEHOLD, ...).
const EnvPrefix = "EPH"

// ConfigRepositoryImpl implements repository.ConfigRepository.
type ConfigRepositoryImpl struct {
	validate *validator.Validate
}

// NewConfigRepository returns a file and environment backed ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ConfigRepositoryImpl{validate: v}
}

// LoadConfigFile reads a TOML, YAML or JSON file, overlays the EPH_* environment
// and validates the result. An empty filePath reads the environment alone.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	var config types.Config

	if filePath != "" {
		if err := readConfigFile(filePath, &config); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return nil, fmt.Errorf("%w: error reading environment: %v", types.ErrInvalidConfig, err)
	}

	if err := r.validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidConfig, describeValidation(err))
	}

	return &config, nil
}

func readConfigFile(filePath string, config *types.Config) error {
	fileExtension := filepath.Ext(filePath)
	fileExtension = strings.ToLower(fileExtension)

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, config); err != nil {
			return fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, config); err != nil {
			return fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, config); err != nil {
			return fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s", fileExtension)
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fmt.Sprint(fe.Value())))
		case "gte", "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be %s %s, got %v", field, fe.Tag(), fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
