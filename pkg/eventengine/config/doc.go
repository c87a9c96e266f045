/*
Package config loads dispatcher settings from files and the environment.

# Overview

Settings controls the ambient behavior of a dispatcher: log level and
format, and whether OpenTelemetry metrics and tracing are enabled.
Handlers and event types are never configured here; they are code.

# Sources

Values are resolved in this order, later sources winning:

 1. Default()
 2. a YAML (.yaml, .yml) or JSON (.json) file
 3. EVENTENGINE_* environment variables

Load runs all three steps and validates the result:

	settings, err := config.Load(os.Getenv("EVENTENGINE_CONFIG"))
	if err != nil {
	    log.Fatal(err)
	}

	opts, err := settings.DispatcherOptions(os.Stderr)
	if err != nil {
	    log.Fatal(err)
	}
	d := eventengine.NewDispatcher(opts...)

An example file:

	log_level: debug
	log_format: json
	metrics: true
	tracing: false
*/
package config
