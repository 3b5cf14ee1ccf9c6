// Package config resolves the service configuration.
//
// Values are layered, each layer overriding the previous one:
//
//  1. Built-in defaults (2000 / 100 / 50 characters, one worker per CPU)
//  2. YAML file, ~/.textchunk/config.yaml or $TEXTCHUNK_CONFIG
//  3. Environment: MAX_CHUNK_SIZE, MIN_CHUNK_SIZE, OVERLAP_SIZE,
//     TEXTCHUNK_WORKERS, TEXTCHUNK_LOG_LEVEL, TEXTCHUNK_TOKEN_COUNTER
//  4. CLI flags
//
// Example file:
//
//	chunking:
//	  max_chunk_size: 1500
//	  min_chunk_size: 80
//	  token_counter: cl100k_base
//	workers: 4
//	log_level: debug
//
// Zero and negative sizes are treated as unset at every layer. Config.Sources
// records which layer supplied each value.
package config
