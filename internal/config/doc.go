// Package config provides configuration loading for the hydrate tools.
//
// The configuration is stored in hydrate.json. Every key has a default and
// can be overridden from the environment with the HYDRATE_ prefix, dots
// replaced by underscores (HYDRATE_LOG_LEVEL, HYDRATE_SERVE_ADDR).
//
// # Configuration File Structure
//
//	{
//	  "debug": false,
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "scheduler": {
//	    "drainWarnSegments": 100
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "hydrate"
//	  },
//	  "serve": {
//	    "addr": "localhost:7070"
//	  },
//	  "hydrate": {
//	    "claimAttr": "data-claim"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Discover(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
