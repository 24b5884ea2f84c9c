// Package config provides configuration management for the milvus-server launcher.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Command-line flags are applied on top by the cmd package.
//
// # Configuration Structure
//
// The Config struct is the central repository for launcher settings, divided into subsections:
//   - Server: executable directory, template, data directory, debug, stop timeout, status address
//   - Log: Logging level and format
//
// Environment keys carry the MILVUS prefix, e.g. MILVUS_SERVER_DATA_DIR or MILVUS_LOG_LEVEL.
//
// These settings configure the launcher itself. The variables of the Milvus
// configuration template are handled by the standalone feature.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.DataDir)
package config
