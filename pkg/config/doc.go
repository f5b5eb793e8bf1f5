// Package config loads typed configuration structs from environment
// variables.
//
// Values come from the process environment, optionally seeded from a .env
// file in the working directory (loaded once, silently skipped when
// absent). Struct fields are bound with `env` tags:
//
//	type StorageConfig struct {
//		OutputDir string `env:"REPORT_OUTPUT_DIR" envDefault:"./reports"`
//		Bucket    string `env:"REPORT_S3_BUCKET"`
//	}
//
//	var cfg StorageConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// Each component of the pipeline owns its Config struct and loads it
// independently; there is no central registry.
package config
