// Package config loads htmlkit configuration.
//
// Settings come from htmlkit.json, when present, and are then overridden
// by HTMLKIT_* environment variables. A .env file in the working directory
// is loaded into the environment first.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "address": ":8080",
//	    "readTimeout": "10s",
//	    "writeTimeout": "10s",
//	    "shutdownTimeout": "15s",
//	    "cacheTTL": "5m",
//	    "maxBodyBytes": 1048576
//	  },
//	  "redis": {
//	    "addr": "localhost:6379",
//	    "db": 0,
//	    "prefix": "htmlkit:"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "json"
//	  },
//	  "publish": {
//	    "target": "s3://my-bucket/fragments",
//	    "region": "eu-west-1"
//	  },
//	  "input": {
//	    "charset": "windows-1252"
//	  }
//	}
//
// # Environment
//
// Every field has an environment name built from its section, for example
// HTMLKIT_SERVER_ADDRESS, HTMLKIT_REDIS_ADDR or HTMLKIT_LOG_LEVEL.
//
// # Usage
//
//	cfg, err := config.Resolve("")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Server.Address)
package config
