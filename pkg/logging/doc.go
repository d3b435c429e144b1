// Package logging provides structured JSON logging for Cumulus pipeline
// components, with optional console and Splunk output.
//
// # Overview
//
// Loggers are obtained by name from a Registry owned by the application.
// Every record a logger emits is rendered as one JSON object carrying the
// fixed pipeline fields:
//
//	{
//	    "collectionName": "MOD09GQ",
//	    "granuleId": "MOD09GQ.A2017025.h21v00.006",
//	    "level": "INFO",
//	    "message": "granule processed",
//	    "timestamp": "2026-01-15T10:30:00.123456-05:00"
//	}
//
// The timestamp is taken from the local clock when the record is formatted
// and includes the UTC offset. Levels use the pipeline names DEBUG, INFO,
// WARNING, ERROR and CRITICAL.
//
// # Usage
//
// Build the registry once and request loggers from it:
//
//	reg := logging.NewRegistry()
//	log, err := reg.GetLogger("ingest",
//	    logging.WithStdout(&logging.StdoutConfig{Level: "INFO"}),
//	    logging.WithSplunk(&logging.SplunkConfig{
//	        Host: "splunk.example.com",
//	        User: "cumulus",
//	        Pass: pass,
//	        Level: "INFO",
//	    }),
//	    logging.WithCollectionName("MOD09GQ"),
//	    logging.WithGranuleID(granuleID),
//	)
//	if err != nil {
//	    return err
//	}
//	defer log.Flush(ctx)
//
//	log.Info("granule processed")
//	log.Error(map[string]any{"message": "checksum mismatch", "file": name})
//
// Asking again for the same name returns the same *Logger with its handler
// set rebuilt from scratch, so repeated setup never duplicates output. With
// no output configured the logger discards everything.
//
// The logger-wide level is INFO. DEBUG records are never emitted through a
// pipeline logger; handler levels can only raise the threshold.
//
// # slog interoperability
//
// Logger.Slog returns an *slog.Logger over the same handlers, so code that
// already uses slog gets the same formatting:
//
//	log.Slog().Info("staged", "bucket", bucket, "bytes", n)
//
// # Diagnostics
//
// The package also sets up the process diagnostics logger used by the
// command line tool and the Splunk sink for reporting its own failures:
//
//	logging.SetDefaultStructuredLogger("cumulus-log", version)
//
// It writes JSON to stderr at the level named by LOG_LEVEL (default INFO)
// and is independent of the pipeline loggers.
package logging
