// Package cli implements the cumulus-log command-line tool.
//
// # Commands
//
// emit - Emit one decorated record:
//
//	cumulus-log emit --message TEXT [--field k=v]... [--level LEVEL]
//	    [--collection NAME] [--granule ID] [--config FILE]
//	    [--splunk-host HOST --splunk-user USER --splunk-pass PASS]
//
// The record goes to stdout and, when Splunk is configured, to Splunk. The
// command waits for Splunk delivery and fails if it did not succeed.
//
// query - Search Splunk:
//
//	cumulus-log query [--filter k=v]... [--format json|yaml|table] [--output FILE]
//
// kv - Print a legacy key=value line:
//
//	cumulus-log kv [--field k=v]... [--pipeline-id ID] [--dataset-id ID] [--error]
//
// serve - Run the HTTP relay (POST /v1/logs, GET /v1/search):
//
//	cumulus-log serve [--address ADDR] [--port 8080] [--rate-limit N] [logger flags]
//
// # Global Flags
//
//	--log-level   diagnostics level on stderr (default info, env LOG_LEVEL)
//	--env-file    .env file to load before running (default: nearest .env)
//
// # Environment
//
// SPLUNK_HOST, SPLUNK_PORT, SPLUNK_USERNAME, SPLUNK_PASSWORD, SPLUNK_INDEX and
// SPLUNK_LEVEL configure Splunk when --splunk-host is not given. PIPELINE_ID
// and DATASET_ID default the kv command's ids. PORT sets the serve port.
package cli
