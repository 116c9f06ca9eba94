package types

// Unknown aglomerado handling.
const (
	UnknownReject = "reject"
	UnknownBucket = "bucket"
)

// Config represents the application configuration that can be loaded from a file.
// Environment variables prefixed with EPH_ override file values.
type Config struct {
	Household     string   `json:"household" yaml:"household" toml:"household" envconfig:"HOUSEHOLD"`
	Individual    string   `json:"individual" yaml:"individual" toml:"individual" envconfig:"INDIVIDUAL"`
	Basket        string   `json:"basket" yaml:"basket" toml:"basket" envconfig:"BASKET"`
	ProcessedDir  string   `json:"processed_dir" yaml:"processed_dir" toml:"processed_dir" envconfig:"PROCESSED_DIR"`
	ReportName    string   `json:"report_name" yaml:"report_name" toml:"report_name" envconfig:"REPORT_NAME"`
	ReportType    []string `json:"report_type" yaml:"report_type" toml:"report_type" envconfig:"REPORT_TYPE" validate:"dive,oneof=csv json pdf xlsx"`
	Dir           string   `json:"dir" yaml:"dir" toml:"dir" envconfig:"DIR"`
	UnknownPolicy string   `json:"unknown_policy" yaml:"unknown_policy" toml:"unknown_policy" envconfig:"UNKNOWN_POLICY" validate:"omitempty,oneof=reject bucket"`
	Top           int      `json:"top" yaml:"top" toml:"top" envconfig:"TOP" validate:"gte=0,lte=64"`
	LogLevel      string   `json:"log_level" yaml:"log_level" toml:"log_level" envconfig:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
	AWSProfile    string   `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile" envconfig:"AWS_PROFILE"`
	AWSRegion     string   `json:"aws_region" yaml:"aws_region" toml:"aws_region" envconfig:"AWS_REGION"`
}
