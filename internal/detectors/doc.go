// Package detectors provides the built-in pattern detectors run by the
// pattern stage. Detectors are stateless and safe for concurrent use;
// each reads the ingestion bundle and optional target history and
// returns unranked patterns.
package detectors
